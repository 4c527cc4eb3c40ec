package config

import (
	"errors"
	"fmt"
)

var (
	errInvalidConfigFile    = errors.New("invalid config file")
	errInvalidCipherSection = errors.New("invalid cipher section")
)

// errKeySizeHint annotates a cipher key error with the expected length.
func errKeySizeHint(size int) error {
	return fmt.Errorf("the required key length is %d bytes", size)
}
