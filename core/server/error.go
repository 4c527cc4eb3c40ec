package server

import "errors"

var (
	errFailedToReadGreeting        = errors.New("failed to read the auth methods request")
	errFailedToSendMethodSelection = errors.New("failed to send the method selection response")
	errFailedToReadRequest         = errors.New("failed to read the request")
	errFailedToSendReply           = errors.New("failed to send the reply")
	errUpstreamDialFailed          = errors.New("failed to establish connection with the upstream")
)
