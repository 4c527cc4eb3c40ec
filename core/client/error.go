package client

import "errors"

var (
	errProxyDialFailed             = errors.New("failed to establish connection with the proxy")
	errUnableToSendGreeting        = errors.New("unable to send the auth methods request")
	errUnableToReadMethodSelection = errors.New("unable to read the method selection response")
	errUnableToSendRequest         = errors.New("unable to send the request")
	errUnableToReadResponse        = errors.New("unable to read the response")
)
