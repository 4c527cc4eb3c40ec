package socks5

import "errors"

var (
	// Type and range errors
	ErrVersionNotSupported      = errors.New("version is not supported")
	ErrAuthMethodNotSupported   = errors.New("auth method is not supported")
	ErrCommandNotSupported      = errors.New("command is not supported")
	ErrAddrTypeNotSupported     = errors.New("address type is not supported")
	ErrResponseCodeNotSupported = errors.New("response code is not supported")

	// Encoding errors, surfaced before the PDU is written. The greeting
	// decoder also returns ErrInvalidMethodCount for NMETHODS of zero.
	ErrTooManyMethods     = errors.New("too many auth methods")
	ErrInvalidMethodCount = errors.New("invalid auth method count")
	ErrDomainTooLong      = errors.New("domain name is too long")

	// Address triple errors
	ErrInvalidDomain = errors.New("invalid domain name")

	// Negotiation errors
	ErrNoAuthMethodSupported = errors.New("no acceptable auth method")
	ErrAuthFailed            = errors.New("authentication failed")
	ErrConnectionFailed      = errors.New("connection failed")
)
