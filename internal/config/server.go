package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// serverAddr holds the listening address of the server.
type serverAddr struct {
	Address string `toml:"address"` // The address for the server to listen on
}

// ServerConfig is the configuration of the SOCKS5 proxy server.
type ServerConfig struct {
	Server  serverAddr    `toml:"server"`
	Auth    *Account      `toml:"auth"`    // Optional; nil serves unauthenticated
	Cipher  cipherConfig  `toml:"cipher"`  // Optional AEAD transport encryption
	Timeout timeoutConfig `toml:"timeout"` // Timeout settings
}

// loadServerConfig reads and parses the server configuration from a TOML
// file.
func loadServerConfig(path string) (*ServerConfig, error) {
	var config ServerConfig
	var err error

	if _, err = toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	if err = config.validate(); err != nil {
		return nil, err
	}
	config.applyDefaultValues()
	return &config, nil
}

// validate checks the ServerConfig for missing or invalid fields.
func (sc *ServerConfig) validate() error {
	var missingFields []string

	if len(sc.Server.Address) < 1 {
		missingFields = append(missingFields, "server.address")
	}
	if sc.Auth != nil {
		if len(sc.Auth.Username) < 1 {
			missingFields = append(missingFields, "auth.username")
		}
		if len(sc.Auth.Password) < 1 {
			missingFields = append(missingFields, "auth.password")
		}
	}
	if len(missingFields) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missingFields, ", "))
	}

	return sc.Cipher.validate()
}

// applyDefaultValues fills in defaults for unspecified fields.
func (sc *ServerConfig) applyDefaultValues() {
	sc.Timeout.applyDefaultValues()
}

// IsAuthEnabled reports whether the server requires username/password
// authentication.
func (sc *ServerConfig) IsAuthEnabled() bool {
	return sc.Auth != nil
}

// IsCipherEnabled reports whether inbound streams are AEAD encrypted.
func (sc *ServerConfig) IsCipherEnabled() bool {
	return sc.Cipher.enabled()
}
