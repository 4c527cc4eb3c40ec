// Package cipher_conn layers AEAD encryption below the SOCKS5 protocol.
// It wraps a transport stream in a packet framing of
//
//	+----------------+--------------------+------------------------+
//	| Payload Length | Nonce              | Ciphertext             |
//	| (2 bytes)      | (AEAD nonce size)  | (variable)             |
//	+----------------+--------------------+------------------------+
//
// where Payload Length counts the nonce plus the ciphertext. The SOCKS
// protocol runs opaquely on top; the cipher_conn Connector and Acceptor slot
// into the client and server drivers like their plain counterparts.
package cipher_conn

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/arshan-dev/payvand/pkg/net/transport"
)

// lengthFieldSize is the byte width of the payload length prefix, bounding a
// single packet's payload to 65535 bytes.
const lengthFieldSize = 2

// CipherConn encrypts and decrypts a wrapped stream with an AEAD cipher.
type CipherConn struct {
	inner    transport.WrappedTCPStream
	aead     cipher.AEAD
	leftover []byte // decrypted bytes not yet delivered to Read
}

var _ transport.WrappedTCPStream = (*CipherConn)(nil)

// New wraps inner with the given AEAD cipher.
func New(inner transport.WrappedTCPStream, aead cipher.AEAD) *CipherConn {
	return &CipherConn{inner: inner, aead: aead}
}

// Read decrypts the next packet from the underlying stream. Bytes left over
// from a previous packet are delivered first.
func (c *CipherConn) Read(b []byte) (int, error) {
	if len(c.leftover) > 0 {
		n := copy(b, c.leftover)
		c.leftover = c.leftover[n:]
		return n, nil
	}

	var lengthField [lengthFieldSize]byte
	if _, err := io.ReadFull(c.inner, lengthField[:]); err != nil {
		return 0, err
	}
	payloadLen := int(binary.BigEndian.Uint16(lengthField[:]))
	if payloadLen < c.aead.NonceSize()+c.aead.Overhead() {
		return 0, errPacketTooShort
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(c.inner, payload); err != nil {
		return 0, err
	}

	nonce := payload[:c.aead.NonceSize()]
	ciphertext := payload[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(ciphertext[:0], nonce, ciphertext, nil)
	if err != nil {
		return 0, err
	}

	n := copy(b, plaintext)
	c.leftover = plaintext[n:]
	return n, nil
}

// Write encrypts b into one or more packets. Plaintext longer than a single
// packet's capacity is split; the reported count is always len(b) on success.
func (c *CipherConn) Write(b []byte) (int, error) {
	maxPlaintext := 65535 - c.aead.NonceSize() - c.aead.Overhead()
	written := 0
	for written < len(b) {
		chunk := b[written:]
		if len(chunk) > maxPlaintext {
			chunk = chunk[:maxPlaintext]
		}
		if err := c.writePacket(chunk); err != nil {
			return written, err
		}
		written += len(chunk)
	}
	return written, nil
}

func (c *CipherConn) writePacket(plaintext []byte) error {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	packet := make([]byte, 0, lengthFieldSize+len(nonce)+len(plaintext)+c.aead.Overhead())
	packet = binary.BigEndian.AppendUint16(packet, uint16(len(nonce)+len(plaintext)+c.aead.Overhead()))
	packet = append(packet, nonce...)
	packet = c.aead.Seal(packet, nonce, plaintext, nil)

	_, err := c.inner.Write(packet)
	return err
}

// Close closes the underlying stream.
func (c *CipherConn) Close() error {
	return c.inner.Close()
}

// CloseRead implements transport.WrappedTCPStream.
func (c *CipherConn) CloseRead() error {
	return c.inner.CloseRead()
}

// CloseWrite implements transport.WrappedTCPStream.
func (c *CipherConn) CloseWrite() error {
	return c.inner.CloseWrite()
}

// Socket implements transport.WrappedTCPStream.
func (c *CipherConn) Socket() *net.TCPConn {
	return c.inner.Socket()
}

func (c *CipherConn) LocalAddr() net.Addr  { return c.inner.LocalAddr() }
func (c *CipherConn) RemoteAddr() net.Addr { return c.inner.RemoteAddr() }

func (c *CipherConn) SetDeadline(t time.Time) error      { return c.inner.SetDeadline(t) }
func (c *CipherConn) SetReadDeadline(t time.Time) error  { return c.inner.SetReadDeadline(t) }
func (c *CipherConn) SetWriteDeadline(t time.Time) error { return c.inner.SetWriteDeadline(t) }
