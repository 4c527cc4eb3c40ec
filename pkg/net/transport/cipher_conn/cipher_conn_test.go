package cipher_conn

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshan-dev/payvand/pkg/net/protocol/socks5"
	"github.com/arshan-dev/payvand/pkg/net/transport"
	"github.com/arshan-dev/payvand/pkg/net/transport/crypto/aead"
)

var testKey = []byte(strings.Repeat("k", 32))

// tcpPair returns two connected TCP streams on the loopback interface.
func tcpPair(t *testing.T) (transport.WrappedTCPStream, transport.WrappedTCPStream) {
	t.Helper()
	listener, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer listener.Close()

	done := make(chan *net.TCPConn, 1)
	go func() {
		conn, err := listener.AcceptTCP()
		if err != nil {
			close(done)
			return
		}
		done <- conn
	}()

	dialed, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	accepted, ok := <-done
	require.True(t, ok)

	left := transport.NewTCPStream(dialed.(*net.TCPConn))
	right := transport.NewTCPStream(accepted)
	t.Cleanup(func() {
		left.Close()
		right.Close()
	})
	return left, right
}

func cipherPair(t *testing.T, algorithm string) (*CipherConn, *CipherConn) {
	t.Helper()
	left, right := tcpPair(t)
	key := testKey[:mustKeySize(t, algorithm)]
	leftAEAD, err := aead.New(algorithm, key)
	require.NoError(t, err)
	rightAEAD, err := aead.New(algorithm, key)
	require.NoError(t, err)
	return New(left, leftAEAD), New(right, rightAEAD)
}

func mustKeySize(t *testing.T, algorithm string) int {
	t.Helper()
	size, err := aead.KeySize(algorithm)
	require.NoError(t, err)
	return size
}

func TestCipherConnRoundTrip(t *testing.T) {
	for _, algorithm := range []string{"chacha20-poly1305", "aes-256-gcm", "aes-128-gcm"} {
		t.Run(algorithm, func(t *testing.T) {
			left, right := cipherPair(t, algorithm)

			payload := []byte("ping across the encrypted stream")
			go func() {
				left.Write(payload)
			}()

			received := make([]byte, len(payload))
			_, err := io.ReadFull(right, received)
			require.NoError(t, err)
			assert.Equal(t, payload, received)
		})
	}
}

func TestCipherConnLargeWriteIsChunked(t *testing.T) {
	left, right := cipherPair(t, "chacha20-poly1305")

	// Larger than a single packet's payload capacity.
	payload := bytes.Repeat([]byte{0xAB}, 150_000)
	go func() {
		n, err := left.Write(payload)
		if err == nil && n == len(payload) {
			left.CloseWrite()
		}
	}()

	received, err := io.ReadAll(right)
	require.NoError(t, err)
	require.Equal(t, payload, received)
}

func TestCipherConnRejectsTamperedPacket(t *testing.T) {
	left, right := tcpPair(t)
	a, err := aead.New("chacha20-poly1305", testKey)
	require.NoError(t, err)
	encrypted := New(right, a)

	// A frame whose payload is garbage must fail authentication, not
	// decrypt to something.
	go func() {
		frame := append([]byte{0x00, 0x20}, bytes.Repeat([]byte{0xFF}, 0x20)...)
		left.Write(frame)
	}()

	buf := make([]byte, 16)
	_, err = encrypted.Read(buf)
	require.Error(t, err)
}

func TestNewConnectorRejectsBadKey(t *testing.T) {
	_, err := NewConnector(&transport.TCPConnector{}, "chacha20-poly1305", []byte("short"))
	require.Error(t, err)

	_, err = NewAcceptor("no-such-algorithm", testKey)
	require.Error(t, err)
}

func TestCipherConnectorDialsAndWraps(t *testing.T) {
	listener, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer listener.Close()

	serverDone := make(chan error, 1)
	go func() {
		conn, err := listener.AcceptTCP()
		if err != nil {
			serverDone <- err
			return
		}
		defer conn.Close()
		acceptor, err := NewAcceptor("aes-256-gcm", testKey)
		if err != nil {
			serverDone <- err
			return
		}
		stream, err := acceptor.Accept(context.Background(), conn)
		if err != nil {
			serverDone <- err
			return
		}
		buf := make([]byte, 5)
		if _, err := io.ReadFull(stream, buf); err != nil {
			serverDone <- err
			return
		}
		_, err = stream.Write(buf)
		serverDone <- err
	}()

	connector, err := NewConnector(&transport.TCPConnector{Resolver: &transport.SystemResolver{}}, "aes-256-gcm", testKey)
	require.NoError(t, err)

	target := socks5.EndpointTarget(netip.MustParseAddrPort(listener.Addr().String()))
	stream, err := connector.Connect(context.Background(), target)
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Write([]byte("hello"))
	require.NoError(t, err)

	echo := make([]byte, 5)
	_, err = io.ReadFull(stream, echo)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), echo)
	require.NoError(t, <-serverDone)
}
