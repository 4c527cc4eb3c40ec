package socks5

import (
	"fmt"
	"io"
)

// Username/password sub-negotiation constants, RFC 1929.
const (
	// userPassVersion is the sub-negotiation version byte. It is distinct
	// from the SOCKS version.
	userPassVersion byte = 0x01

	UserPassStatusSuccess byte = 0x00
	UserPassStatusFailure byte = 0x01
)

// UserPassRequest is the client credential frame:
//
//	+----+------+----------+------+----------+
//	|VER | ULEN |  UNAME   | PLEN |  PASSWD  |
//	+----+------+----------+------+----------+
//	| 1  |  1   | 1 to 255 |  1   | 1 to 255 |
//	+----+------+----------+------+----------+
type UserPassRequest struct {
	Username []byte
	Password []byte
}

// Encode serializes the credential frame. Credentials longer than 255 bytes
// are rejected before any bytes are produced.
func (r UserPassRequest) Encode() ([]byte, error) {
	if len(r.Username) > 255 {
		return nil, fmt.Errorf("%w: username is too long", ErrAuthFailed)
	}
	if len(r.Password) > 255 {
		return nil, fmt.Errorf("%w: password is too long", ErrAuthFailed)
	}
	b := make([]byte, 0, 3+len(r.Username)+len(r.Password))
	b = append(b, userPassVersion, byte(len(r.Username)))
	b = append(b, r.Username...)
	b = append(b, byte(len(r.Password)))
	b = append(b, r.Password...)
	return b, nil
}

// ReadUserPassRequest decodes a credential frame from rd. Both fields are
// read exactly ULEN and PLEN bytes long; a sub-version byte other than 0x01
// fails with ErrVersionNotSupported.
func ReadUserPassRequest(rd io.Reader) (UserPassRequest, error) {
	var head [2]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return UserPassRequest{}, err
	}
	if head[0] != userPassVersion {
		return UserPassRequest{}, fmt.Errorf("%w: sent auth sub-version: %d", ErrVersionNotSupported, head[0])
	}
	username := make([]byte, head[1])
	if _, err := io.ReadFull(rd, username); err != nil {
		return UserPassRequest{}, err
	}
	var plen [1]byte
	if _, err := io.ReadFull(rd, plen[:]); err != nil {
		return UserPassRequest{}, err
	}
	password := make([]byte, plen[0])
	if _, err := io.ReadFull(rd, password); err != nil {
		return UserPassRequest{}, err
	}
	return UserPassRequest{Username: username, Password: password}, nil
}

// EncodeUserPassStatus serializes the server's sub-negotiation reply.
func EncodeUserPassStatus(status byte) []byte {
	return []byte{userPassVersion, status}
}

// ReadUserPassStatus decodes the server's sub-negotiation reply, returning
// the status byte. STATUS interpretation is up to the caller; 0x00 means
// success, anything else failure.
func ReadUserPassStatus(rd io.Reader) (byte, error) {
	var head [2]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return 0, err
	}
	if head[0] != userPassVersion {
		return 0, fmt.Errorf("%w: sent auth sub-version: %d", ErrVersionNotSupported, head[0])
	}
	return head[1], nil
}
