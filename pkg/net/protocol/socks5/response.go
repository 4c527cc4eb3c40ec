package socks5

import (
	"fmt"
	"io"
)

// AuthMethodsResponse is the server's method selection:
//
//	+----+--------+
//	|VER | METHOD |
//	+----+--------+
//	| 1  |   1    |
//	+----+--------+
//
// A nil Method means "no acceptable methods" and encodes as 0xFF.
type AuthMethodsResponse struct {
	Version Version
	Method  *AuthMethod
}

// SelectedMethod builds a response choosing the given method.
func SelectedMethod(version Version, method AuthMethod) AuthMethodsResponse {
	return AuthMethodsResponse{Version: version, Method: &method}
}

// NoMethodSelected builds the 0xFF rejection response.
func NoMethodSelected(version Version) AuthMethodsResponse {
	return AuthMethodsResponse{Version: version}
}

// Encode serializes the method selection.
func (r AuthMethodsResponse) Encode() []byte {
	if r.Method == nil {
		return []byte{byte(r.Version), noAcceptableMethods}
	}
	return []byte{byte(r.Version), byte(*r.Method)}
}

// ReadAuthMethodsResponse decodes a method selection from rd. The 0xFF
// sentinel is surfaced as ErrNoAuthMethodSupported rather than as a method
// value; a successful return always carries a non-nil Method.
func ReadAuthMethodsResponse(rd io.Reader) (AuthMethodsResponse, error) {
	var head [2]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return AuthMethodsResponse{}, err
	}
	version, err := ParseVersion(head[0])
	if err != nil {
		return AuthMethodsResponse{}, err
	}
	if head[1] == noAcceptableMethods {
		return AuthMethodsResponse{}, fmt.Errorf("%w: server rejected all offered methods", ErrNoAuthMethodSupported)
	}
	method, err := ParseAuthMethod(head[1])
	if err != nil {
		return AuthMethodsResponse{}, err
	}
	return AuthMethodsResponse{Version: version, Method: &method}, nil
}

// Response is the server reply:
//
//	+----+-----+-------+------+----------+----------+
//	|VER | REP |  RSV  | ATYP | BND.ADDR | BND.PORT |
//	+----+-----+-------+------+----------+----------+
//	| 1  |  1  | X'00' |  1   | Variable |    2     |
//	+----+-----+-------+------+----------+----------+
//
// Addr is the proxy's bound address, or the dummy 0.0.0.0:0 when none is
// meaningful.
type Response struct {
	Version Version
	Code    ResponseCode
	Addr    TargetAddr
}

// Encode serializes the reply.
func (r Response) Encode() ([]byte, error) {
	b := make([]byte, 0, 3+r.Addr.SerializedLen())
	b = append(b, byte(r.Version), byte(r.Code), 0x00)
	return r.Addr.AppendTo(b)
}

// ReadResponse decodes a server reply from rd. The REP byte is mapped
// per RFC 1928; unknown codes fail with ErrResponseCodeNotSupported.
func ReadResponse(rd io.Reader) (Response, error) {
	var head [3]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return Response{}, err
	}
	version, err := ParseVersion(head[0])
	if err != nil {
		return Response{}, err
	}
	code, err := ParseResponseCode(head[1])
	if err != nil {
		return Response{}, err
	}
	addr, err := ReadTargetAddr(rd)
	if err != nil {
		return Response{}, err
	}
	return Response{Version: version, Code: code, Addr: addr}, nil
}
