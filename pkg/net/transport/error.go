package transport

import "errors"

var (
	// ErrAddrNotAvailable is returned when the resolver yields no endpoints
	// for a target.
	ErrAddrNotAvailable = errors.New("no endpoints available for target")

	errResolveFailed = errors.New("failed to resolve target")
)
