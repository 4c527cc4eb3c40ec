package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
)

// Connector yields a wrapped stream connected to a target. The client
// handshake driver uses one to reach its proxy; callers can substitute
// implementations that wrap the socket (see the cipher_conn subpackage).
type Connector interface {
	Connect(ctx context.Context, target socks5.TargetAddr) (WrappedTCPStream, error)
}

// TCPConnector is the canonical connector: resolve the target, attempt each
// endpoint in order, wrap the first socket that connects.
type TCPConnector struct {
	Resolver DNSResolver
	// Dialer configures the outbound TCP dial; the zero value works.
	Dialer net.Dialer
}

var _ Connector = (*TCPConnector)(nil)

// Connect implements Connector.
func (c *TCPConnector) Connect(ctx context.Context, target socks5.TargetAddr) (WrappedTCPStream, error) {
	conn, err := DialTCP(ctx, &c.Dialer, c.Resolver, target)
	if err != nil {
		return nil, err
	}
	return NewTCPStream(conn), nil
}

// DialTCP resolves target and attempts a TCP connection to each returned
// endpoint in order, stopping at the first success. An empty resolver result
// fails with ErrAddrNotAvailable; otherwise the last dial error is returned.
func DialTCP(ctx context.Context, dialer *net.Dialer, resolver DNSResolver, target socks5.TargetAddr) (*net.TCPConn, error) {
	endpoints, err := resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	err = fmt.Errorf("%w: %s", ErrAddrNotAvailable, target.String())
	for _, endpoint := range endpoints {
		conn, dialErr := dialer.DialContext(ctx, "tcp", endpoint.String())
		if dialErr != nil {
			err = dialErr
			continue
		}
		tcpConn, ok := conn.(*net.TCPConn)
		if !ok {
			conn.Close()
			return nil, errors.New("dialed connection is not TCP")
		}
		return tcpConn, nil
	}
	return nil, err
}
