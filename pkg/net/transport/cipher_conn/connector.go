package cipher_conn

import (
	"context"
	"crypto/cipher"
	"net"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/transport"
	"github.com/arshan-dev/payvand/pkg/net/transport/crypto/aead"
)

// Connector wraps another connector so every outbound stream is AEAD
// encrypted. Both peers must be configured with the same algorithm and key.
type Connector struct {
	inner transport.Connector
	aead  cipher.AEAD
}

var _ transport.Connector = (*Connector)(nil)

// NewConnector builds an encrypting connector over inner using the named
// AEAD algorithm.
func NewConnector(inner transport.Connector, algorithm string, key []byte) (*Connector, error) {
	a, err := aead.New(algorithm, key)
	if err != nil {
		return nil, err
	}
	return &Connector{inner: inner, aead: a}, nil
}

// Connect implements transport.Connector.
func (c *Connector) Connect(ctx context.Context, target socks5.TargetAddr) (transport.WrappedTCPStream, error) {
	stream, err := c.inner.Connect(ctx, target)
	if err != nil {
		return nil, err
	}
	return New(stream, c.aead), nil
}

// Acceptor wraps inbound sockets the same way, for the server side.
type Acceptor struct {
	aead cipher.AEAD
}

var _ transport.Acceptor = (*Acceptor)(nil)

// NewAcceptor builds an encrypting acceptor using the named AEAD algorithm.
func NewAcceptor(algorithm string, key []byte) (*Acceptor, error) {
	a, err := aead.New(algorithm, key)
	if err != nil {
		return nil, err
	}
	return &Acceptor{aead: a}, nil
}

// Accept implements transport.Acceptor.
func (a *Acceptor) Accept(_ context.Context, raw *net.TCPConn) (transport.WrappedTCPStream, error) {
	return New(transport.NewTCPStream(raw), a.aead), nil
}
