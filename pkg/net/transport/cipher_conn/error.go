package cipher_conn

import "errors"

var (
	errPacketTooShort = errors.New("encrypted packet is shorter than nonce plus tag")
)
