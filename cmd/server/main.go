// The server command runs a SOCKS5 proxy configured through a TOML file.
package main

import (
	"context"
	"net"
	"time"

	"github.com/arshan-dev/payvand/core/server"
	"github.com/arshan-dev/payvand/internal/config"
	"github.com/arshan-dev/payvand/internal/flags"
	"github.com/arshan-dev/payvand/internal/logger"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5/auth"
	"github.com/arshan-dev/payvand/pkg/net/transport"
	"github.com/arshan-dev/payvand/pkg/net/transport/cipher_conn"
)

func main() {
	cfg := config.GetServerConfig(flags.CfgPathFlag)
	if flags.VerboseFlag {
		logger.SetLevel(logger.DEBUG)
	}

	scheme := socks5.NoAuth()
	if cfg.IsAuthEnabled() {
		scheme = socks5.WithBasicAuth(cfg.Auth.Username, cfg.Auth.Password)
	}

	var acceptor transport.Acceptor = &transport.TCPAcceptor{}
	if cfg.IsCipherEnabled() {
		var err error
		acceptor, err = cipher_conn.NewAcceptor(cfg.Cipher.Algorithm, []byte(cfg.Cipher.Key))
		if err != nil {
			logger.Fatal(err)
		}
	}

	srv := &server.Server{
		Auth:             auth.ServerFromScheme(scheme),
		Acceptor:         acceptor,
		Resolver:         &transport.SystemResolver{},
		HandshakeTimeout: time.Duration(cfg.Timeout.HandshakeTimeout) * time.Second,
		Dialer:           net.Dialer{Timeout: time.Duration(cfg.Timeout.DialTimeout) * time.Second},
	}
	if err := srv.ListenAndServe(context.Background(), cfg.Server.Address); err != nil {
		logger.Fatal(err)
	}
}
