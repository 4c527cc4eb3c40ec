// Package config provides the TOML configuration for the payvand drivers.
package config

import (
	"errors"
	"sync"

	"github.com/arshan-dev/payvand/internal/logger"
	"github.com/arshan-dev/payvand/pkg/net/transport/crypto/aead"
)

// timeoutConfig holds the timeout settings, in seconds.
type timeoutConfig struct {
	DialTimeout      int `toml:"dialTimeout"`      // Upstream/proxy dial timeout
	HandshakeTimeout int `toml:"handshakeTimeout"` // SOCKS5 handshake timeout
}

// applyDefaultValues sets default timeouts for unspecified fields.
func (tc *timeoutConfig) applyDefaultValues() {
	if tc.DialTimeout == 0 {
		tc.DialTimeout = 10
	}
	if tc.HandshakeTimeout == 0 {
		tc.HandshakeTimeout = 10
	}
}

// Account holds a username/password pair for SOCKS5 authentication.
type Account struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// cipherConfig optionally layers AEAD encryption below the SOCKS5 protocol.
// Both peers must share the algorithm and key.
type cipherConfig struct {
	Algorithm string `toml:"algorithm"`
	Key       string `toml:"key"`
}

// enabled reports whether a cipher section was given at all.
func (cc *cipherConfig) enabled() bool {
	return cc.Algorithm != "" || cc.Key != ""
}

// validate checks the algorithm name and key length against the registry.
func (cc *cipherConfig) validate() error {
	if !cc.enabled() {
		return nil
	}
	if err := aead.IsSupported(cc.Algorithm, []byte(cc.Key)); err != nil {
		keySize, sizeErr := aead.KeySize(cc.Algorithm)
		if sizeErr != nil {
			return errors.Join(errInvalidCipherSection, err)
		}
		return errors.Join(errInvalidCipherSection, err, errKeySizeHint(keySize))
	}
	return nil
}

var (
	clientConfig            *ClientConfig
	serverConfig            *ServerConfig
	clientConfigLoadingOnce sync.Once
	serverConfigLoadingOnce sync.Once
)

// GetClientConfig loads and returns the client configuration. It uses
// sync.Once so the file is read only once even in concurrent scenarios; a
// broken configuration terminates the program.
func GetClientConfig(path string) *ClientConfig {
	clientConfigLoadingOnce.Do(func() {
		var err error
		if clientConfig, err = loadClientConfig(path); err != nil {
			logger.Fatal(errors.Join(errInvalidConfigFile, err))
		}
	})
	return clientConfig
}

// GetServerConfig loads and returns the server configuration, with the same
// once-only semantics as GetClientConfig.
func GetServerConfig(path string) *ServerConfig {
	serverConfigLoadingOnce.Do(func() {
		var err error
		if serverConfig, err = loadServerConfig(path); err != nil {
			logger.Fatal(errors.Join(errInvalidConfigFile, err))
		}
	})
	return serverConfig
}
