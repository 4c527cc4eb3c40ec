package shared_error

import "errors"

var (
	ErrServerListenFailed  = errors.New("server failed to start listening on specified address")
	ErrClientListenFailed  = errors.New("client failed to start listening on specified address")
	ErrConnectionAccepting = errors.New("failed to accept incoming connection")
	ErrForwardDialFailed   = errors.New("client failed to open a tunnel through the proxy")
	ErrConnectionClosed    = errors.New("connection unexpectedly closed")
)
