package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// clientAddr holds the local listening address of the forwarder.
type clientAddr struct {
	Address string `toml:"address"` // The address for the client to listen on
}

// proxyConfig describes the upstream SOCKS5 proxy to tunnel through.
type proxyConfig struct {
	Address  string `toml:"address"`
	Username string `toml:"username"` // Optional; empty means no authentication
	Password string `toml:"password"`
}

// forwardConfig names the fixed target every local connection is tunneled
// to.
type forwardConfig struct {
	Target string `toml:"target"` // host:port
}

// ClientConfig is the configuration of the local forwarder client.
type ClientConfig struct {
	Client  clientAddr    `toml:"client"`
	Proxy   proxyConfig   `toml:"proxy"`
	Forward forwardConfig `toml:"forward"`
	Cipher  cipherConfig  `toml:"cipher"`  // Optional AEAD transport encryption
	Timeout timeoutConfig `toml:"timeout"` // Timeout settings
}

// loadClientConfig reads and parses the client configuration from a TOML
// file.
func loadClientConfig(path string) (*ClientConfig, error) {
	var config ClientConfig
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

// IsProxyAuthEnabled reports whether the forwarder authenticates against its
// proxy.
func (cc *ClientConfig) IsProxyAuthEnabled() bool {
	return len(cc.Proxy.Username) > 0
}

// IsCipherEnabled reports whether the proxy stream is AEAD encrypted.
func (cc *ClientConfig) IsCipherEnabled() bool {
	return cc.Cipher.enabled()
}

// validate checks the ClientConfig for missing or invalid fields.
func (cc *ClientConfig) validate() error {
	var missingFields []string

	if len(cc.Client.Address) < 1 {
		missingFields = append(missingFields, "client.address")
	}
	if len(cc.Proxy.Address) < 1 {
		missingFields = append(missingFields, "proxy.address")
	}
	if len(cc.Forward.Target) < 1 {
		missingFields = append(missingFields, "forward.target")
	}
	if len(cc.Proxy.Username) > 0 && len(cc.Proxy.Password) < 1 {
		missingFields = append(missingFields, "proxy.password")
	}
	if len(missingFields) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missingFields, ", "))
	}

	return cc.Cipher.validate()
}

// applyDefaultValues fills in defaults for unspecified fields.
func (cc *ClientConfig) applyDefaultValues() {
	cc.Timeout.applyDefaultValues()
}
