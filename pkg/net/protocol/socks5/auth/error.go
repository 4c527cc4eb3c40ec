package auth

import "errors"

var (
	// errNoAcceptableMethod is returned by Select when nothing in the
	// client's offered list is usable. The driver answers it with the 0xFF
	// method selection reply.
	errNoAcceptableMethod = errors.New("no acceptable method among offered")
)
