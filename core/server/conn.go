package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/arshan-dev/payvand/internal/logger"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5/auth"
	"github.com/arshan-dev/payvand/pkg/net/relay"
	"github.com/arshan-dev/payvand/pkg/net/transport"
	"github.com/arshan-dev/payvand/pkg/net/utils"
)

// connection is the transient state of one client session. It is owned by
// the goroutine spawned for the accepted socket and is gone when that
// goroutine exits.
type connection struct {
	identifier string
	socket     transport.WrappedTCPStream
	auth       auth.ServerProvider
}

func newConnection(socket transport.WrappedTCPStream, provider auth.ServerProvider) *connection {
	return &connection{
		identifier: fmt.Sprintf("[%v -> %v]", socket.RemoteAddr(), socket.LocalAddr()),
		socket:     socket,
		auth:       provider,
	}
}

// process runs the connection lifecycle: handshake, then relay on success.
// The socket is closed on exit regardless of outcome; after a failure no
// further reply is written.
func (c *connection) process(ctx context.Context, srv *Server) {
	defer c.socket.Close()

	handshakeCtx := ctx
	cancel := func() {}
	if srv.HandshakeTimeout > 0 {
		handshakeCtx, cancel = context.WithTimeout(ctx, srv.HandshakeTimeout)
	}
	defer cancel()

	// TCP_NODELAY for the handshake, prior value restored before the relay.
	nodelay, nodelayErr := transport.NoDelay(c.socket.Socket())
	if nodelayErr != nil {
		logger.Warn(c.identifier, " couldn't fetch tcp_nodelay status: ", nodelayErr)
	} else if err := c.socket.Socket().SetNoDelay(true); err != nil {
		logger.Warn(c.identifier, " couldn't enable tcp_nodelay: ", err)
	}

	stop := utils.DeadlineFromContext(handshakeCtx, c.socket)
	upstream, err := c.handshake(handshakeCtx, srv)
	stop()

	if nodelayErr == nil {
		if restoreErr := c.socket.Socket().SetNoDelay(nodelay); restoreErr != nil {
			logger.Warn(c.identifier, " couldn't reset tcp_nodelay: ", restoreErr)
		}
	}

	if err != nil {
		logger.Warn(c.identifier, " handshake failed: ", err)
		return
	}
	defer upstream.Close()

	logger.Debug(c.identifier, " relaying to ", upstream.RemoteAddr())
	sent, received, relayErr := relay.Relay(c.socket, transport.NewTCPStream(upstream))
	if relayErr != nil && !errors.Is(relayErr, io.EOF) && !errors.Is(relayErr, net.ErrClosed) {
		logger.Error(c.identifier, " relay failed: ", relayErr)
	}
	logger.Debug(fmt.Sprintf("%s client wrote %d bytes and received %d bytes", c.identifier, sent, received))
}

// handshake drives the server side of the state machine: read the greeting,
// select and validate the auth method, read the request and dispatch it. On
// success it returns the connected upstream socket; every failure path has
// already written whatever reply the protocol requires.
func (c *connection) handshake(ctx context.Context, srv *Server) (*net.TCPConn, error) {
	greeting, err := socks5.ReadAuthMethodsRequest(c.socket)
	if err != nil {
		// The client sent something illegal; no reply is owed.
		return nil, errors.Join(errFailedToReadGreeting, err)
	}
	if greeting.Version != socks5.V5 {
		return nil, fmt.Errorf("%w: sent version: %d", socks5.ErrVersionNotSupported, byte(greeting.Version))
	}

	method, err := c.auth.Select(greeting.Methods)
	if err != nil {
		if _, sendErr := c.socket.Write(socks5.NoMethodSelected(greeting.Version).Encode()); sendErr != nil {
			return nil, errors.Join(errFailedToSendMethodSelection, sendErr, err)
		}
		return nil, errors.Join(socks5.ErrNoAuthMethodSupported, err)
	}
	if _, err := c.socket.Write(socks5.SelectedMethod(greeting.Version, method).Encode()); err != nil {
		return nil, errors.Join(errFailedToSendMethodSelection, err)
	}

	// The provider owns any sub-protocol failure reply; on error the
	// connection is simply closed.
	if err := c.auth.Validate(ctx, greeting.Version, method, c.socket); err != nil {
		return nil, err
	}

	request, err := socks5.ReadRequest(c.socket)
	if err != nil {
		if errors.Is(err, socks5.ErrCommandNotSupported) {
			if replyErr := c.reply(greeting.Version, socks5.CodeCommandNotSupported); replyErr != nil {
				return nil, errors.Join(replyErr, err)
			}
		}
		return nil, errors.Join(errFailedToReadRequest, err)
	}
	logger.Debug(c.identifier, " received request: ", request.Command, " ", request.Addr)

	switch request.Command {
	case socks5.CommandConnect:
		return c.handleConnect(ctx, request, srv)
	default: // BIND and UDP ASSOCIATE are recognized but not implemented.
		if err := c.reply(request.Version, socks5.CodeCommandNotSupported); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: sent command: %d", socks5.ErrCommandNotSupported, byte(request.Command))
	}
}

// handleConnect resolves the target and dials each endpoint in order. The
// client gets Success with the dummy bound address once the upstream is
// connected, NetworkUnreachable when resolution or every dial fails.
func (c *connection) handleConnect(ctx context.Context, request socks5.Request, srv *Server) (*net.TCPConn, error) {
	upstream, err := transport.DialTCP(ctx, &srv.Dialer, srv.Resolver, request.Addr)
	if err != nil {
		if replyErr := c.reply(request.Version, socks5.CodeNetworkUnreachable); replyErr != nil {
			return nil, errors.Join(replyErr, err)
		}
		return nil, errors.Join(errUpstreamDialFailed, err)
	}
	if err := c.reply(request.Version, socks5.CodeSuccess); err != nil {
		upstream.Close()
		return nil, err
	}
	return upstream, nil
}

// reply sends a Response carrying the dummy 0.0.0.0:0 bound address.
func (c *connection) reply(version socks5.Version, code socks5.ResponseCode) error {
	response, err := socks5.Response{Version: version, Code: code, Addr: socks5.DummyTarget()}.Encode()
	if err != nil {
		return err
	}
	if _, err := c.socket.Write(response); err != nil {
		return errors.Join(errFailedToSendReply, err)
	}
	return nil
}
