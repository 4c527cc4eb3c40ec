//go:build !linux && !darwin

package transport

import "net"

// NoDelay assumes TCP_NODELAY is enabled on platforms where it cannot be
// read back; the net package enables it by default on every new connection.
func NoDelay(*net.TCPConn) (bool, error) {
	return true, nil
}
