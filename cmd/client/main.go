// The client command runs a local port forwarder: every TCP connection
// accepted on the configured address is tunneled to a fixed target through
// an upstream SOCKS5 proxy.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/arshan-dev/payvand/core/client"
	"github.com/arshan-dev/payvand/internal/config"
	"github.com/arshan-dev/payvand/internal/flags"
	"github.com/arshan-dev/payvand/internal/logger"
	"github.com/arshan-dev/payvand/internal/shared_error"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/relay"
	"github.com/arshan-dev/payvand/pkg/net/transport"
	"github.com/arshan-dev/payvand/pkg/net/transport/cipher_conn"
)

func main() {
	cfg := config.GetClientConfig(flags.CfgPathFlag)
	if flags.VerboseFlag {
		logger.SetLevel(logger.DEBUG)
	}

	target, err := socks5.ParseTargetAddr(cfg.Forward.Target)
	if err != nil {
		logger.Fatal("invalid forward.target: ", err)
	}
	proxyAddr, err := socks5.ParseTargetAddr(cfg.Proxy.Address)
	if err != nil {
		logger.Fatal("invalid proxy.address: ", err)
	}

	scheme := socks5.NewProxyScheme(proxyAddr)
	if cfg.IsProxyAuthEnabled() {
		scheme = socks5.NewProxySchemeWithBasicAuth(proxyAddr, cfg.Proxy.Username, cfg.Proxy.Password)
	}

	var connector transport.Connector = &transport.TCPConnector{
		Resolver: &transport.SystemResolver{},
		Dialer:   net.Dialer{Timeout: time.Duration(cfg.Timeout.DialTimeout) * time.Second},
	}
	if cfg.IsCipherEnabled() {
		connector, err = cipher_conn.NewConnector(connector, cfg.Cipher.Algorithm, []byte(cfg.Cipher.Key))
		if err != nil {
			logger.Fatal(err)
		}
	}

	listener, err := net.Listen("tcp", cfg.Client.Address)
	if err != nil {
		logger.Fatal(errors.Join(shared_error.ErrClientListenFailed, err))
	}
	logger.Info("Client is listening on: ", listener.Addr(), ", forwarding to: ", target)

	handshakeTimeout := time.Duration(cfg.Timeout.HandshakeTimeout) * time.Second
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Warn(errors.Join(shared_error.ErrConnectionAccepting, err))
			continue
		}
		go handleConnection(conn.(*net.TCPConn), scheme, target, connector, handshakeTimeout)
	}
}

// handleConnection tunnels one local connection through the proxy.
func handleConnection(local *net.TCPConn, scheme *socks5.ProxyScheme, target socks5.TargetAddr, connector transport.Connector, handshakeTimeout time.Duration) {
	defer local.Close()

	ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
	response, stream, err := client.Connect(ctx, scheme, target, socks5.CommandConnect, connector)
	cancel()
	if err != nil {
		logger.Warn(errors.Join(shared_error.ErrForwardDialFailed, err))
		return
	}
	defer stream.Close()
	logger.Debug("Tunnel established, bound address: ", response.Addr)

	sent, received, relayErr := relay.Relay(transport.NewTCPStream(local), stream)
	if relayErr != nil && !errors.Is(relayErr, net.ErrClosed) {
		logger.Error("relay failed: ", relayErr)
	}
	logger.Debug(fmt.Sprintf("wrote %d bytes and received %d bytes", sent, received))
}
