package auth

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
)

// BasicAuth is the RFC 1929 username/password provider.
//
// On the client side it offers "no auth" as well, so the handshake can fall
// back when the server does not ask for credentials. On the server side it
// requires username/password: a client that cannot offer it is rejected at
// method selection.
type BasicAuth struct {
	username []byte
	password []byte
}

// NewBasicAuth returns a username/password provider for the given pair.
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{username: []byte(username), password: []byte(password)}
}

var (
	_ ClientProvider = (*BasicAuth)(nil)
	_ ServerProvider = (*BasicAuth)(nil)
)

// Methods implements ClientProvider.
func (b *BasicAuth) Methods() []socks5.AuthMethod {
	return []socks5.AuthMethod{socks5.AuthMethodNone, socks5.AuthMethodUsernamePassword}
}

// Authenticate implements ClientProvider. For the username/password method
// it writes the credential frame and maps any non-zero STATUS to
// ErrAuthFailed.
func (b *BasicAuth) Authenticate(_ context.Context, version socks5.Version, method socks5.AuthMethod, rw io.ReadWriter) error {
	if version != socks5.V5 {
		return fmt.Errorf("%w: sent version: %d", socks5.ErrVersionNotSupported, byte(version))
	}
	switch method {
	case socks5.AuthMethodNone:
		return nil
	case socks5.AuthMethodUsernamePassword:
		frame, err := socks5.UserPassRequest{Username: b.username, Password: b.password}.Encode()
		if err != nil {
			return err
		}
		if _, err = rw.Write(frame); err != nil {
			return err
		}
		status, err := socks5.ReadUserPassStatus(rw)
		if err != nil {
			return err
		}
		if status != socks5.UserPassStatusSuccess {
			return fmt.Errorf("%w: incorrect credentials", socks5.ErrAuthFailed)
		}
		return nil
	default:
		return fmt.Errorf("%w: sent method: %d", socks5.ErrAuthMethodNotSupported, byte(method))
	}
}

// Select implements ServerProvider.
func (b *BasicAuth) Select(methods []socks5.AuthMethod) (socks5.AuthMethod, error) {
	for _, m := range methods {
		if m == socks5.AuthMethodUsernamePassword {
			return socks5.AuthMethodUsernamePassword, nil
		}
	}
	return 0, fmt.Errorf("%w: client offered methods: %v", errNoAcceptableMethod, methods)
}

// Validate implements ServerProvider. The credential frame is read exactly
// ULEN and PLEN bytes long and both fields are compared byte-for-byte; a
// mismatch in either field is answered with STATUS=0x01 before the error is
// returned.
func (b *BasicAuth) Validate(_ context.Context, version socks5.Version, method socks5.AuthMethod, rw io.ReadWriter) error {
	if version != socks5.V5 {
		if err := respond(rw, socks5.UserPassStatusFailure); err != nil {
			return err
		}
		return fmt.Errorf("%w: sent version: %d", socks5.ErrVersionNotSupported, byte(version))
	}
	if method != socks5.AuthMethodUsernamePassword {
		if err := respond(rw, socks5.UserPassStatusFailure); err != nil {
			return err
		}
		return fmt.Errorf("%w: sent method: %d", socks5.ErrAuthMethodNotSupported, byte(method))
	}
	request, err := socks5.ReadUserPassRequest(rw)
	if err != nil {
		return err
	}
	if !bytes.Equal(request.Username, b.username) || !bytes.Equal(request.Password, b.password) {
		if err := respond(rw, socks5.UserPassStatusFailure); err != nil {
			return err
		}
		return fmt.Errorf("%w: incorrect credentials for username: %s", socks5.ErrAuthFailed, request.Username)
	}
	return respond(rw, socks5.UserPassStatusSuccess)
}

func respond(w io.Writer, status byte) error {
	_, err := w.Write(socks5.EncodeUserPassStatus(status))
	return err
}
