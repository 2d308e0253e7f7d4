package transport

import "errors"

// ErrClosed reports a send or receive on a session that is closed or
// unreachable. Fatal to the receiver task; it terminates its loop.
var ErrClosed = errors.New("transport closed")

// Session is a message-oriented channel to the server: one frame per Send,
// one frame per Recv. Frames may be lost or reordered by the medium; the
// protocol layer tolerates both. Recv blocks and is called from exactly one
// goroutine (the receiver task); Send may be called from any goroutine.
type Session interface {
	Send(b []byte) error
	Recv() ([]byte, error)
	Close() error
}
