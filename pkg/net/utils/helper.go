// Package utils provides small networking helpers shared by the client and
// server drivers.
package utils

import (
	"context"
	"net"
	"time"
)

// DeadlineFromContext applies the context's deadline to conn and interrupts
// in-flight reads and writes when the context is canceled, by forcing the
// connection deadline into the past. The returned stop function releases the
// watcher and clears the deadline; it must be called before the connection
// is handed on to the next phase.
func DeadlineFromContext(ctx context.Context, conn net.Conn) (stop func()) {
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.SetDeadline(time.Now())
		case <-done:
		}
	}()
	return func() {
		close(done)
		conn.SetDeadline(time.Time{})
	}
}
