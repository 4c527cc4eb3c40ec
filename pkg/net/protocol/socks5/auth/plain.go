package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
)

// PlainAuth is the no-authentication provider. It offers only the "no auth"
// method on the client side and accepts only that method on the server side;
// its sub-negotiation is a no-op.
type PlainAuth struct{}

// NewPlainAuth returns the no-authentication provider.
func NewPlainAuth() *PlainAuth {
	return &PlainAuth{}
}

var (
	_ ClientProvider = (*PlainAuth)(nil)
	_ ServerProvider = (*PlainAuth)(nil)
)

// Methods implements ClientProvider.
func (p *PlainAuth) Methods() []socks5.AuthMethod {
	return []socks5.AuthMethod{socks5.AuthMethodNone}
}

// Authenticate implements ClientProvider. There is no sub-negotiation for
// the "no auth" method.
func (p *PlainAuth) Authenticate(_ context.Context, version socks5.Version, method socks5.AuthMethod, _ io.ReadWriter) error {
	if version != socks5.V5 {
		return fmt.Errorf("%w: sent version: %d", socks5.ErrVersionNotSupported, byte(version))
	}
	if method != socks5.AuthMethodNone {
		return fmt.Errorf("%w: sent method: %d", socks5.ErrAuthMethodNotSupported, byte(method))
	}
	return nil
}

// Select implements ServerProvider.
func (p *PlainAuth) Select(methods []socks5.AuthMethod) (socks5.AuthMethod, error) {
	for _, m := range methods {
		if m == socks5.AuthMethodNone {
			return socks5.AuthMethodNone, nil
		}
	}
	return 0, fmt.Errorf("%w: client offered methods: %v", errNoAcceptableMethod, methods)
}

// Validate implements ServerProvider. No sub-negotiation runs for "no auth".
func (p *PlainAuth) Validate(_ context.Context, version socks5.Version, method socks5.AuthMethod, _ io.ReadWriter) error {
	if version != socks5.V5 {
		return fmt.Errorf("%w: sent version: %d", socks5.ErrVersionNotSupported, byte(version))
	}
	if method != socks5.AuthMethodNone {
		return fmt.Errorf("%w: sent method: %d", socks5.ErrAuthMethodNotSupported, byte(method))
	}
	return nil
}
