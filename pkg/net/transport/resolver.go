package transport

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
)

// DNSResolver turns a SOCKS target into the endpoints to dial. Resolvers are
// shared across connections and must be safe for concurrent use.
type DNSResolver interface {
	// Resolve returns the endpoints for target, in the order they should be
	// attempted. An empty result is treated by callers as "address not
	// available".
	Resolve(ctx context.Context, target socks5.TargetAddr) ([]netip.AddrPort, error)
}

// SystemResolver resolves domain targets through the operating system's
// resolver. Endpoint targets pass straight through.
type SystemResolver struct {
	// Resolver lets callers substitute a custom net.Resolver; nil means
	// net.DefaultResolver.
	Resolver *net.Resolver
}

var _ DNSResolver = (*SystemResolver)(nil)

// Resolve implements DNSResolver.
func (r *SystemResolver) Resolve(ctx context.Context, target socks5.TargetAddr) ([]netip.AddrPort, error) {
	if target.IsEndpoint() {
		return []netip.AddrPort{netip.AddrPortFrom(target.IP, target.Port)}, nil
	}
	resolver := r.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	ips, err := resolver.LookupNetIP(ctx, "ip", target.Domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errResolveFailed, target.Domain, err)
	}
	endpoints := make([]netip.AddrPort, 0, len(ips))
	for _, ip := range ips {
		endpoints = append(endpoints, netip.AddrPortFrom(ip.Unmap(), target.Port))
	}
	return endpoints, nil
}

// StaticResolver resolves every target to a fixed endpoint list. Useful for
// tests and for callers that pre-resolve.
type StaticResolver struct {
	Endpoints []netip.AddrPort
}

var _ DNSResolver = (*StaticResolver)(nil)

// Resolve implements DNSResolver.
func (r *StaticResolver) Resolve(context.Context, socks5.TargetAddr) ([]netip.AddrPort, error) {
	return r.Endpoints, nil
}
