// Package relay implements the full-duplex byte pump that carries tunneled
// traffic between a client stream and its upstream stream after a successful
// CONNECT.
package relay

import (
	"io"
	"sync"
)

// DuplexStream is the minimal surface the relay needs: both TCP streams and
// the encrypted transport satisfy it.
type DuplexStream interface {
	io.Reader
	io.Writer
	// CloseWrite half-closes the stream so the peer observes EOF while its
	// own sending side keeps working.
	CloseWrite() error
}

// Relay runs two unidirectional pumps — client to upstream and upstream to
// client — until each reader reaches EOF or fails. A pump that finishes
// normally shuts down the write half of its destination, so the peer's pump
// terminates on EOF instead of stalling. Relay returns the exact byte counts
// (client→upstream, upstream→client) and the first pump error, if any. A
// closed read half counts as normal completion.
//
// Backpressure is inherent: each direction reads only after its previous
// write drained, bounding in-flight data to one copy buffer per direction.
func Relay(client, upstream DuplexStream) (sent int64, received int64, err error) {
	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	go pump(&wg, errChan, upstream, client, &sent)
	go pump(&wg, errChan, client, upstream, &received)

	wg.Wait()
	close(errChan)
	for pumpErr := range errChan {
		if err == nil {
			err = pumpErr
		}
	}
	return sent, received, err
}

// pump copies src into dst until EOF or error, recording the copied byte
// count. The destination's write half is shut down afterwards either way, so
// the opposite pump cannot wait forever on a peer that will never send EOF.
func pump(wg *sync.WaitGroup, errChan chan<- error, dst DuplexStream, src io.Reader, count *int64) {
	defer wg.Done()
	n, err := io.Copy(dst, src)
	*count = n
	if err != nil {
		dst.CloseWrite()
		errChan <- err
		return
	}
	if err := dst.CloseWrite(); err != nil {
		errChan <- err
	}
}
