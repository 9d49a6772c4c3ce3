package netcat

import (
	"errors"
	"fmt"
)

// ErrSetup is returned when none of the construction modes was usable:
// a connection to wrap, a remote address, or a listen address.
var ErrSetup = errors.New("netcat: need a socket, a remote address, or a listen address")

// ConnectionDroppedError reports a peer close during an operation that
// still expected data. Wanted and Got carry the byte deficit when the
// operation had an exact size contract.
type ConnectionDroppedError struct {
	Wanted int
	Got    int
}

func (e *ConnectionDroppedError) Error() string {
	if e.Wanted > 0 {
		return fmt.Sprintf("netcat: connection closed before %d bytes received (got %d)", e.Wanted, e.Got)
	}
	return "netcat: connection dropped"
}

// IOError wraps a low-level socket failure with the operation that hit it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return "netcat: " + e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }
