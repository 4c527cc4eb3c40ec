package transport

import (
	"context"
	"net"
)

// Acceptor wraps a freshly-accepted raw TCP socket into the stream the
// server side of the protocol runs over. Implementations may perform their
// own handshaking (a TLS accept, a cipher setup) that can fail independently
// of SOCKS. Acceptors are shared across connections and must be safe for
// concurrent use.
type Acceptor interface {
	Accept(ctx context.Context, raw *net.TCPConn) (WrappedTCPStream, error)
}

// TCPAcceptor is the plain acceptor: it wraps the socket as-is.
type TCPAcceptor struct{}

var _ Acceptor = (*TCPAcceptor)(nil)

// Accept implements Acceptor.
func (a *TCPAcceptor) Accept(_ context.Context, raw *net.TCPConn) (WrappedTCPStream, error) {
	return NewTCPStream(raw), nil
}
