package socks5

// ProxyAuthScheme selects how a client authenticates against its proxy.
// The zero value means no authentication.
type ProxyAuthScheme struct {
	basic *BasicAuthConfig
}

// NoAuth returns the scheme for an unauthenticated proxy.
func NoAuth() ProxyAuthScheme {
	return ProxyAuthScheme{}
}

// WithBasicAuth returns a scheme carrying RFC 1929 username/password
// credentials.
func WithBasicAuth(username, password string) ProxyAuthScheme {
	return ProxyAuthScheme{basic: &BasicAuthConfig{username: username, password: password}}
}

// BasicAuth returns the configured credentials, or ok=false for the no-auth
// scheme.
func (s ProxyAuthScheme) BasicAuth() (cfg *BasicAuthConfig, ok bool) {
	return s.basic, s.basic != nil
}

// BasicAuthConfig holds a username/password pair. Each credential must fit
// in 255 bytes on the wire; oversized credentials are rejected at encode
// time, before the credential frame is written.
type BasicAuthConfig struct {
	username string
	password string
}

func (c *BasicAuthConfig) Username() string { return c.username }

func (c *BasicAuthConfig) Password() string { return c.password }

// ProxyScheme describes the proxy a client connects through: protocol
// version, proxy endpoint, and authentication. Immutable after construction
// and safe to share across handshakes.
type ProxyScheme struct {
	version Version
	addr    TargetAddr
	auth    ProxyAuthScheme
}

// NewProxyScheme returns a SOCKS5 scheme with no authentication.
func NewProxyScheme(addr TargetAddr) *ProxyScheme {
	return &ProxyScheme{version: V5, addr: addr, auth: NoAuth()}
}

// NewProxySchemeWithBasicAuth returns a SOCKS5 scheme carrying
// username/password credentials.
func NewProxySchemeWithBasicAuth(addr TargetAddr, username, password string) *ProxyScheme {
	return &ProxyScheme{version: V5, addr: addr, auth: WithBasicAuth(username, password)}
}

// Version returns the protocol version of the scheme.
func (s *ProxyScheme) Version() Version { return s.version }

// Addr returns the proxy endpoint.
func (s *ProxyScheme) Addr() TargetAddr { return s.addr }

// Auth returns the authentication scheme.
func (s *ProxyScheme) Auth() ProxyAuthScheme { return s.auth }
