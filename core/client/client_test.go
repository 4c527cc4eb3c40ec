package client

import (
	"context"
	"io"
	"net"
	"net/netip"
	"testing"
	"time"

	gosocks5 "github.com/things-go/go-socks5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/transport"
)

// These tests run the client handshake driver against an independent SOCKS5
// server implementation, so a protocol mistake that our own server happened
// to mirror would still be caught.

func startEchoUpstream(t *testing.T) socks5.TargetAddr {
	t.Helper()
	listener, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.AcceptTCP()
			if err != nil {
				return
			}
			go func(conn *net.TCPConn) {
				defer conn.Close()
				io.Copy(conn, conn)
				conn.CloseWrite()
			}(conn)
		}
	}()
	return socks5.EndpointTarget(netip.MustParseAddrPort(listener.Addr().String()))
}

func startThirdPartyProxy(t *testing.T, opts ...gosocks5.Option) socks5.TargetAddr {
	t.Helper()
	server := gosocks5.NewServer(opts...)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go server.Serve(listener)
	// Give the accept loop a moment to come up.
	time.Sleep(10 * time.Millisecond)

	return socks5.EndpointTarget(netip.MustParseAddrPort(listener.Addr().String()))
}

func dialThrough(t *testing.T, scheme *socks5.ProxyScheme, target socks5.TargetAddr) (socks5.Response, transport.WrappedTCPStream, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	connector := &transport.TCPConnector{Resolver: &transport.SystemResolver{}}
	return Connect(ctx, scheme, target, socks5.CommandConnect, connector)
}

func TestConnectAgainstThirdPartyServer(t *testing.T) {
	proxyAddr := startThirdPartyProxy(t)
	target := startEchoUpstream(t)

	response, stream, err := dialThrough(t, socks5.NewProxyScheme(proxyAddr), target)
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, socks5.CodeSuccess, response.Code)

	_, err = stream.Write([]byte("ping"))
	require.NoError(t, err)
	require.NoError(t, stream.CloseWrite())
	echoed, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), echoed)
}

func TestConnectAgainstThirdPartyServerWithAuth(t *testing.T) {
	cator := gosocks5.UserPassAuthenticator{
		Credentials: gosocks5.StaticCredentials{"testusername": "testpassword"},
	}
	proxyAddr := startThirdPartyProxy(t, gosocks5.WithAuthMethods([]gosocks5.Authenticator{cator}))
	target := startEchoUpstream(t)

	scheme := socks5.NewProxySchemeWithBasicAuth(proxyAddr, "testusername", "testpassword")
	response, stream, err := dialThrough(t, scheme, target)
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, socks5.CodeSuccess, response.Code)

	// Incorrect credentials are rejected by the server.
	scheme = socks5.NewProxySchemeWithBasicAuth(proxyAddr, "testusername", "wrongpassword")
	_, _, err = dialThrough(t, scheme, target)
	require.Error(t, err)
}

func TestConnectRefusedProxy(t *testing.T) {
	// Nothing listens on this endpoint.
	proxyAddr := socks5.EndpointTarget(netip.MustParseAddrPort("127.0.0.1:1"))
	_, _, err := dialThrough(t, socks5.NewProxyScheme(proxyAddr), socks5.HostTarget("example.com", 443))
	require.Error(t, err)
}

func TestConnectDomainTooLongFailsBeforeIO(t *testing.T) {
	proxyAddr := startThirdPartyProxy(t)
	longDomain := make([]byte, 256)
	for i := range longDomain {
		longDomain[i] = 'a'
	}

	_, _, err := dialThrough(t, socks5.NewProxyScheme(proxyAddr), socks5.HostTarget(string(longDomain), 80))
	require.ErrorIs(t, err, socks5.ErrDomainTooLong)
}
