// Package aead provides the AEAD cipher registry used by the encrypted
// transport.
package aead

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"
)

// constructor builds an AEAD cipher from a key.
type constructor func(key []byte) (cipher.AEAD, error)

type algorithm struct {
	keySize     int
	constructor constructor
}

// supported maps algorithm names to their key size and constructor.
var supported = map[string]algorithm{
	"chacha20-poly1305": {keySize: chacha20poly1305.KeySize, constructor: chacha20poly1305.New},
	"aes-256-gcm":       {keySize: 32, constructor: newAESGCM},
	"aes-192-gcm":       {keySize: 24, constructor: newAESGCM},
	"aes-128-gcm":       {keySize: 16, constructor: newAESGCM},
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// IsSupported checks that name refers to a known algorithm and that the key
// has the required length.
func IsSupported(name string, key []byte) error {
	meta, ok := supported[name]
	if !ok {
		return errAlgorithmUnsupported
	}
	if len(key) != meta.keySize {
		return errInvalidKeySize
	}
	return nil
}

// KeySize returns the key length in bytes required by the named algorithm.
func KeySize(name string) (int, error) {
	meta, ok := supported[name]
	if !ok {
		return 0, errAlgorithmUnsupported
	}
	return meta.keySize, nil
}

// New builds an AEAD cipher for the named algorithm. The returned cipher is
// stateless and safe for concurrent Seal/Open calls.
func New(name string, key []byte) (cipher.AEAD, error) {
	if err := IsSupported(name, key); err != nil {
		return nil, err
	}
	return supported[name].constructor(key)
}
