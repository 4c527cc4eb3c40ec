//go:build linux || darwin

package transport

import (
	"net"

	"golang.org/x/sys/unix"
)

// NoDelay reports whether TCP_NODELAY is currently enabled on conn. The net
// package only exposes the setter, so the value is read back with
// getsockopt(2); the drivers use it to restore the prior state after a
// handshake.
func NoDelay(conn *net.TCPConn) (bool, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return false, err
	}
	var (
		enabled int
		sockErr error
	)
	if err := raw.Control(func(fd uintptr) {
		enabled, sockErr = unix.GetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY)
	}); err != nil {
		return false, err
	}
	if sockErr != nil {
		return false, sockErr
	}
	return enabled != 0, nil
}
