package auth

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
)

func TestPlainAuthSelect(t *testing.T) {
	provider := NewPlainAuth()

	method, err := provider.Select([]socks5.AuthMethod{socks5.AuthMethodNone})
	require.NoError(t, err)
	assert.Equal(t, socks5.AuthMethodNone, method)

	_, err = provider.Select([]socks5.AuthMethod{socks5.AuthMethodUsernamePassword})
	require.Error(t, err)
}

func TestPlainAuthRejectsVersionAndMethod(t *testing.T) {
	provider := NewPlainAuth()
	ctx := context.Background()

	err := provider.Authenticate(ctx, socks5.V4, socks5.AuthMethodNone, nil)
	require.ErrorIs(t, err, socks5.ErrVersionNotSupported)

	err = provider.Authenticate(ctx, socks5.V5, socks5.AuthMethodUsernamePassword, nil)
	require.ErrorIs(t, err, socks5.ErrAuthMethodNotSupported)

	require.NoError(t, provider.Authenticate(ctx, socks5.V5, socks5.AuthMethodNone, nil))
	require.NoError(t, provider.Validate(ctx, socks5.V5, socks5.AuthMethodNone, nil))
}

func TestBasicAuthSelect(t *testing.T) {
	provider := NewBasicAuth("alice", "s3cret")

	method, err := provider.Select([]socks5.AuthMethod{socks5.AuthMethodNone, socks5.AuthMethodUsernamePassword})
	require.NoError(t, err)
	assert.Equal(t, socks5.AuthMethodUsernamePassword, method)

	// A client that cannot do username/password is rejected.
	_, err = provider.Select([]socks5.AuthMethod{socks5.AuthMethodNone})
	require.Error(t, err)
}

func TestBasicAuthMethodsOrder(t *testing.T) {
	methods := NewBasicAuth("alice", "s3cret").Methods()
	require.Equal(t, []socks5.AuthMethod{socks5.AuthMethodNone, socks5.AuthMethodUsernamePassword}, methods)
}

// runSubNegotiation drives a client provider against a server provider over
// an in-memory pipe and returns both outcomes.
func runSubNegotiation(t *testing.T, client *BasicAuth, server *BasicAuth) (clientErr, serverErr error) {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	done := make(chan error, 1)
	go func() {
		done <- server.Validate(context.Background(), socks5.V5, socks5.AuthMethodUsernamePassword, serverSide)
	}()
	clientErr = client.Authenticate(context.Background(), socks5.V5, socks5.AuthMethodUsernamePassword, clientSide)
	serverErr = <-done
	return clientErr, serverErr
}

func TestBasicAuthSubNegotiationSuccess(t *testing.T) {
	clientErr, serverErr := runSubNegotiation(t,
		NewBasicAuth("alice", "s3cret"),
		NewBasicAuth("alice", "s3cret"))
	require.NoError(t, clientErr)
	require.NoError(t, serverErr)
}

func TestBasicAuthSubNegotiationMismatches(t *testing.T) {
	cases := []struct {
		name             string
		username, password string
	}{
		{"wrong password", "alice", "wrong"},
		{"wrong username", "bob", "s3cret"},
		{"shorter password", "alice", "s3cre"},
		{"longer password", "alice", "s3cret0"},
		{"empty username", "", "s3cret"},
		{"max length mismatch", strings.Repeat("a", 255), strings.Repeat("b", 255)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clientErr, serverErr := runSubNegotiation(t,
				NewBasicAuth(tc.username, tc.password),
				NewBasicAuth("alice", "s3cret"))
			require.ErrorIs(t, clientErr, socks5.ErrAuthFailed)
			require.ErrorIs(t, serverErr, socks5.ErrAuthFailed)
		})
	}
}

func TestBasicAuthMaxLengthCredentials(t *testing.T) {
	username := strings.Repeat("u", 255)
	password := strings.Repeat("p", 255)
	clientErr, serverErr := runSubNegotiation(t,
		NewBasicAuth(username, password),
		NewBasicAuth(username, password))
	require.NoError(t, clientErr)
	require.NoError(t, serverErr)
}

func TestBasicAuthClientFallsBackToNoAuth(t *testing.T) {
	provider := NewBasicAuth("alice", "s3cret")
	// When the server selects "no auth" there is no sub-negotiation.
	require.NoError(t, provider.Authenticate(context.Background(), socks5.V5, socks5.AuthMethodNone, nil))
}

func TestProvidersFromScheme(t *testing.T) {
	_, ok := ClientFromScheme(socks5.NoAuth()).(*PlainAuth)
	assert.True(t, ok)
	_, ok = ClientFromScheme(socks5.WithBasicAuth("u", "p")).(*BasicAuth)
	assert.True(t, ok)
	_, ok = ServerFromScheme(socks5.NoAuth()).(*PlainAuth)
	assert.True(t, ok)
	_, ok = ServerFromScheme(socks5.WithBasicAuth("u", "p")).(*BasicAuth)
	assert.True(t, ok)
}
