package aead

import "errors"

var (
	errAlgorithmUnsupported = errors.New("the AEAD algorithm is not supported")
	errInvalidKeySize       = errors.New("the key length does not match the algorithm's key size")
)
