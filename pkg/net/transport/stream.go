// Package transport defines the stream, connector, acceptor and resolver
// abstractions the SOCKS5 drivers run over, together with their plain TCP
// implementations. Encrypted transports layer strictly below the protocol:
// see the cipher_conn subpackage.
package transport

import (
	"net"
)

// WrappedTCPStream is a bidirectional byte stream backed by a TCP socket.
// Reads and writes are independently usable from concurrent goroutines, and
// CloseRead/CloseWrite shut down one half while the other keeps flowing, so
// a relay can propagate EOF without tearing the whole connection down.
//
// Socket exposes the underlying TCP connection for option control
// (TCP_NODELAY, peer address); any encryption sits between the stream
// surface and that socket.
type WrappedTCPStream interface {
	net.Conn
	// Socket returns the underlying TCP connection.
	Socket() *net.TCPConn
	// CloseRead shuts down the reading side of the stream.
	CloseRead() error
	// CloseWrite shuts down the writing side of the stream, signaling EOF
	// to the peer.
	CloseWrite() error
}

// TCPStream is the plain, unencrypted WrappedTCPStream.
type TCPStream struct {
	*net.TCPConn
}

var _ WrappedTCPStream = (*TCPStream)(nil)

// NewTCPStream wraps a raw TCP connection.
func NewTCPStream(conn *net.TCPConn) *TCPStream {
	return &TCPStream{TCPConn: conn}
}

// Socket implements WrappedTCPStream.
func (s *TCPStream) Socket() *net.TCPConn {
	return s.TCPConn
}
