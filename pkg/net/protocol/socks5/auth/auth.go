// Package auth holds the pluggable authentication strategies used on both
// sides of the SOCKS5 method negotiation, plus the two built-in providers:
// PlainAuth (no authentication) and BasicAuth (RFC 1929 username/password).
package auth

import (
	"context"
	"io"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
)

// ClientProvider selects and runs the client side of the authentication
// sub-negotiation. Implementations must be safe for concurrent use; the
// built-ins carry no mutable state.
type ClientProvider interface {
	// Methods returns the methods this provider is willing to offer,
	// most preferred first.
	Methods() []socks5.AuthMethod
	// Authenticate runs the sub-negotiation for the server-selected method
	// on rw. It must reject versions other than V5 and methods outside
	// Methods().
	Authenticate(ctx context.Context, version socks5.Version, method socks5.AuthMethod, rw io.ReadWriter) error
}

// ServerProvider selects and validates the server side of the
// authentication sub-negotiation.
type ServerProvider interface {
	// Select picks the method to use from the client's offered list, or
	// errors when none is acceptable.
	Select(methods []socks5.AuthMethod) (socks5.AuthMethod, error)
	// Validate runs the method-specific sub-negotiation on rw. On failure
	// the provider has already written any required failure reply before
	// returning; the caller only has to close the connection.
	Validate(ctx context.Context, version socks5.Version, method socks5.AuthMethod, rw io.ReadWriter) error
}

// ClientFromScheme maps a proxy auth scheme to its built-in client provider.
func ClientFromScheme(scheme socks5.ProxyAuthScheme) ClientProvider {
	if cfg, ok := scheme.BasicAuth(); ok {
		return NewBasicAuth(cfg.Username(), cfg.Password())
	}
	return NewPlainAuth()
}

// ServerFromScheme maps a proxy auth scheme to its built-in server provider.
func ServerFromScheme(scheme socks5.ProxyAuthScheme) ServerProvider {
	if cfg, ok := scheme.BasicAuth(); ok {
		return NewBasicAuth(cfg.Username(), cfg.Password())
	}
	return NewPlainAuth()
}
