// Package client implements the client side of the SOCKS5 handshake: it
// connects to a proxy through a pluggable connector, negotiates an
// authentication method, authenticates, issues the command request and hands
// the tunneled stream back to the caller.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arshan-dev/payvand/internal/logger"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5/auth"
	"github.com/arshan-dev/payvand/pkg/net/transport"
	"github.com/arshan-dev/payvand/pkg/net/utils"
)

// Connect tunnels target through the proxy described by scheme.
//
// On success the returned stream is positioned immediately after the server's
// reply and is byte-for-byte transparent from there on; the reply carries the
// proxy's bound address. On any failure the stream is closed and nothing is
// retried.
//
// The authentication provider is derived from the scheme: no-auth schemes use
// PlainAuth, schemes with credentials use BasicAuth. ConnectWithProvider
// accepts a custom provider instead.
func Connect(ctx context.Context, scheme *socks5.ProxyScheme, target socks5.TargetAddr, command socks5.Command, connector transport.Connector) (socks5.Response, transport.WrappedTCPStream, error) {
	return ConnectWithProvider(ctx, scheme, target, command, connector, auth.ClientFromScheme(scheme.Auth()))
}

// ConnectWithProvider is Connect with an explicit authentication provider.
func ConnectWithProvider(ctx context.Context, scheme *socks5.ProxyScheme, target socks5.TargetAddr, command socks5.Command, connector transport.Connector, provider auth.ClientProvider) (socks5.Response, transport.WrappedTCPStream, error) {
	logger.Debug("Connecting to proxy: ", scheme.Addr())
	start := time.Now()
	stream, err := connector.Connect(ctx, scheme.Addr())
	if err != nil {
		return socks5.Response{}, nil, errors.Join(errProxyDialFailed, err)
	}
	logger.Debug("Connected to proxy, took ", time.Since(start))

	handshakeDone := false
	defer func() {
		if !handshakeDone {
			stream.Close()
		}
	}()

	stop := utils.DeadlineFromContext(ctx, stream)
	defer stop()

	// Cut handshake latency with TCP_NODELAY, restoring the socket's prior
	// state afterwards. Socket option failures are logged, never fatal.
	nodelay, nodelayErr := transport.NoDelay(stream.Socket())
	if nodelayErr != nil {
		logger.Warn("Couldn't fetch tcp_nodelay status: ", nodelayErr)
	} else if err := stream.Socket().SetNoDelay(true); err != nil {
		logger.Warn("Couldn't enable tcp_nodelay: ", err)
	}

	response, err := handshake(ctx, scheme.Version(), target, command, stream, provider)
	if err != nil {
		return socks5.Response{}, nil, err
	}

	if nodelayErr == nil {
		if err := stream.Socket().SetNoDelay(nodelay); err != nil {
			logger.Warn("Couldn't reset tcp_nodelay: ", err)
		}
	}

	handshakeDone = true
	return response, stream, nil
}

// handshake drives the three client phases on the one stream: method
// negotiation, authentication sub-negotiation, command request.
func handshake(ctx context.Context, version socks5.Version, target socks5.TargetAddr, command socks5.Command, stream transport.WrappedTCPStream, provider auth.ClientProvider) (socks5.Response, error) {
	greeting, err := socks5.AuthMethodsRequest{Version: version, Methods: provider.Methods()}.Encode()
	if err != nil {
		return socks5.Response{}, err
	}
	if _, err := stream.Write(greeting); err != nil {
		return socks5.Response{}, errors.Join(errUnableToSendGreeting, err)
	}

	// A 0xFF selection surfaces as ErrNoAuthMethodSupported here.
	selection, err := socks5.ReadAuthMethodsResponse(stream)
	if err != nil {
		return socks5.Response{}, errors.Join(errUnableToReadMethodSelection, err)
	}
	logger.Debug("Proxy selected auth method: ", *selection.Method)

	if err := provider.Authenticate(ctx, version, *selection.Method, stream); err != nil {
		return socks5.Response{}, err
	}

	request, err := socks5.Request{Version: version, Command: command, Addr: target}.Encode()
	if err != nil {
		return socks5.Response{}, err
	}
	if _, err := stream.Write(request); err != nil {
		return socks5.Response{}, errors.Join(errUnableToSendRequest, err)
	}

	response, err := socks5.ReadResponse(stream)
	if err != nil {
		return socks5.Response{}, errors.Join(errUnableToReadResponse, err)
	}
	if response.Code != socks5.CodeSuccess {
		return socks5.Response{}, fmt.Errorf("%w: %w", socks5.ErrConnectionFailed, response.Code)
	}
	return response, nil
}
