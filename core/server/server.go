// Package server implements the SOCKS5 proxy server: a listener loop that
// hands each accepted connection to its own goroutine, where the handshake is
// driven, the requested command dispatched and, on CONNECT, the two sockets
// relayed until either side finishes.
package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/arshan-dev/payvand/internal/logger"
	"github.com/arshan-dev/payvand/internal/shared_error"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5/auth"
	"github.com/arshan-dev/payvand/pkg/net/transport"
)

// Server serves SOCKS5 over a TCP listener. Auth, Acceptor and Resolver are
// shared read-only across connection goroutines and must be safe for
// concurrent use; the built-in implementations are.
type Server struct {
	// Auth selects and validates the authentication method per connection.
	Auth auth.ServerProvider
	// Acceptor wraps each accepted socket before the handshake runs.
	Acceptor transport.Acceptor
	// Resolver resolves CONNECT targets to dialable endpoints.
	Resolver transport.DNSResolver
	// HandshakeTimeout bounds the phases from method negotiation through
	// command dispatch for each connection. Zero means no timeout; callers
	// can also bound the whole run through ctx.
	HandshakeTimeout time.Duration
	// Dialer configures upstream CONNECT dials; the zero value works.
	Dialer net.Dialer
}

// Start listens on bindAddr and serves until the listener fails, deriving
// the authentication provider from scheme.
func Start(ctx context.Context, bindAddr string, scheme socks5.ProxyAuthScheme, acceptor transport.Acceptor, resolver transport.DNSResolver) error {
	srv := &Server{Auth: auth.ServerFromScheme(scheme), Acceptor: acceptor, Resolver: resolver}
	return srv.ListenAndServe(ctx, bindAddr)
}

// StartWithListener serves on an existing listener with an explicit
// authentication provider. The bound port stays observable through the
// listener's Addr.
func StartWithListener(ctx context.Context, listener *net.TCPListener, provider auth.ServerProvider, acceptor transport.Acceptor, resolver transport.DNSResolver) error {
	srv := &Server{Auth: provider, Acceptor: acceptor, Resolver: resolver}
	return srv.Serve(ctx, listener)
}

// ListenAndServe binds a TCP listener on bindAddr and serves on it.
func (s *Server) ListenAndServe(ctx context.Context, bindAddr string) error {
	addr, err := net.ResolveTCPAddr("tcp", bindAddr)
	if err != nil {
		return errors.Join(shared_error.ErrServerListenFailed, err)
	}
	listener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return errors.Join(shared_error.ErrServerListenFailed, err)
	}
	defer listener.Close()
	return s.Serve(ctx, listener)
}

// Serve accepts connections until the listener is closed or fails fatally.
// Per-connection errors are logged and never stop the loop.
func (s *Server) Serve(ctx context.Context, listener *net.TCPListener) error {
	logger.Info("SOCKS5 server listening on: ", listener.Addr())
	for {
		raw, err := listener.AcceptTCP()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			logger.Warn(errors.Join(shared_error.ErrConnectionAccepting, err))
			continue
		}
		go s.handleConnection(ctx, raw)
	}
}

// handleConnection owns one accepted socket: wrap it through the acceptor,
// then run the connection lifecycle. Failures never propagate back to the
// accept loop.
func (s *Server) handleConnection(ctx context.Context, raw *net.TCPConn) {
	stream, err := s.Acceptor.Accept(ctx, raw)
	if err != nil {
		logger.Warn("Couldn't accept socket with acceptor: ", err)
		raw.Close()
		return
	}
	newConnection(stream, s.Auth).process(ctx, s)
}
