package netcat

import (
	"bytes"
	"errors"
	"io"
	"net"
	"time"
)

// opDeadline is the absolute wall-clock bound of one receive operation.
// The zero value blocks forever.
type opDeadline struct {
	bound time.Time
}

func (nc *Netcat) newDeadline(d time.Duration) opDeadline {
	if d == 0 {
		return opDeadline{}
	}
	return opDeadline{bound: time.Now().Add(d)}
}

// resolve maps the call's tri-state timeout onto a concrete duration,
// with 0 meaning block forever.
func (nc *Netcat) resolve(t Timeout) time.Duration {
	if t == Default {
		return nc.timeout
	}
	return time.Duration(t)
}

// restoreDeadline drops the per-call read deadline so it cannot leak
// into an unrelated subsequent operation. The persistent default is
// re-armed by the next operation itself. Runs on every exit path.
func (nc *Netcat) restoreDeadline() {
	nc.sock.SetReadDeadline(time.Time{})
}

// readChunk issues one bounded raw read against the operation deadline.
// Outcomes: data on success; closed=true on a zero-length read (peer
// shut down); timedOut=true when the deadline expired, which also
// latches the connection's TimedOut flag; err only for genuine I/O
// failures.
func (nc *Netcat) readChunk(max int, dl opDeadline) (data []byte, closed, timedOut bool, err error) {
	if dl.bound.IsZero() {
		if err := nc.sock.SetReadDeadline(time.Time{}); err != nil {
			return nil, false, false, err
		}
	} else {
		if remaining := time.Until(dl.bound); remaining <= 0 {
			nc.timedOut = true
			return nil, false, true, nil
		}
		if err := nc.sock.SetReadDeadline(dl.bound); err != nil {
			return nil, false, false, err
		}
	}

	p := make([]byte, max)
	n, err := nc.sock.Read(p)
	if n > 0 {
		// A read that moved bytes succeeded; any pending error
		// resurfaces on the next call.
		return p[:n], false, false, nil
	}
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil, true, false, nil
	case isTimeout(err):
		nc.timedOut = true
		return nil, false, true, nil
	default:
		return nil, false, false, err
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Recv returns at most max bytes (chunkSize if max <= 0). Residual bytes
// are served first without touching the socket; otherwise a single raw
// read is issued. A zero-length result is an error only when no timeout
// is in effect, in which case it signals a dropped connection.
func (nc *Netcat) Recv(max int, t Timeout) ([]byte, error) {
	nc.timedOut = false
	if max <= 0 {
		max = chunkSize
	}
	d := nc.resolve(t)
	if d > 0 {
		nc.header("receiving %dB or until timeout (%v)", max, d)
	} else {
		nc.header("receiving %dB", max)
	}

	if len(nc.buf) > 0 {
		ret := nc.consume(min(max, len(nc.buf)))
		nc.mirrorRecv(ret)
		return ret, nil
	}

	defer nc.restoreDeadline()
	data, _, _, err := nc.readChunk(max, nc.newDeadline(d))
	if err != nil {
		return nil, &IOError{Op: "recv", Err: err}
	}
	if len(data) == 0 && d == 0 && !nc.timedOut {
		return nil, &ConnectionDroppedError{}
	}
	nc.mirrorRecv(data)
	return data, nil
}

// RecvUntil accumulates raw reads into the residual buffer until delim
// appears, then returns everything up to and including its first
// occurrence; trailing bytes stay buffered for the next call. On
// deadline expiry it returns nothing, consumes nothing, and sets the
// TimedOut flag. A peer close before the delimiter is found is a
// dropped connection.
func (nc *Netcat) RecvUntil(delim []byte, t Timeout) ([]byte, error) {
	nc.timedOut = false
	d := nc.resolve(t)
	if d > 0 {
		nc.header("receiving until %q or timeout (%v)", delim, d)
	} else {
		nc.header("receiving until %q", delim)
	}

	defer nc.restoreDeadline()
	dl := nc.newDeadline(d)
	for !bytes.Contains(nc.buf, delim) {
		data, closed, timedOut, err := nc.readChunk(chunkSize, dl)
		if err != nil {
			return nil, &IOError{Op: "recv_until", Err: err}
		}
		if timedOut {
			return nil, nil
		}
		if closed {
			return nil, &ConnectionDroppedError{}
		}
		nc.buf = append(nc.buf, data...)
	}

	ret := nc.consume(bytes.Index(nc.buf, delim) + len(delim))
	nc.mirrorRecv(ret)
	return ret, nil
}

// RecvExactly accumulates until n bytes are buffered and returns exactly
// n, leaving the remainder buffered. On deadline expiry it returns a
// short result and sets the TimedOut flag. A peer close before n bytes
// arrived, with no timeout involved, is a dropped connection naming the
// deficit.
func (nc *Netcat) RecvExactly(n int, t Timeout) ([]byte, error) {
	nc.timedOut = false
	if n <= 0 {
		return nil, nil
	}
	d := nc.resolve(t)
	if d > 0 {
		nc.header("receiving exactly %dB or until timeout (%v)", n, d)
	} else {
		nc.header("receiving exactly %dB", n)
	}

	defer nc.restoreDeadline()
	dl := nc.newDeadline(d)
	for len(nc.buf) < n {
		data, closed, timedOut, err := nc.readChunk(n-len(nc.buf), dl)
		if err != nil {
			return nil, &IOError{Op: "recv_exactly", Err: err}
		}
		if timedOut {
			break
		}
		if closed {
			return nil, &ConnectionDroppedError{Wanted: n, Got: len(nc.buf)}
		}
		nc.buf = append(nc.buf, data...)
	}

	ret := nc.consume(min(n, len(nc.buf)))
	nc.mirrorRecv(ret)
	return ret, nil
}

// RecvAll reads until the peer closes or the deadline expires and
// returns everything, residual bytes included, resetting the buffer.
// I/O failures end the loop gracefully with partial content; they are
// reported through the log channel, never as an error.
func (nc *Netcat) RecvAll(t Timeout) []byte {
	nc.timedOut = false
	d := nc.resolve(t)
	if d > 0 {
		nc.header("receiving until close or timeout (%v)", d)
	} else {
		nc.header("receiving until close")
	}

	defer nc.restoreDeadline()
	dl := nc.newDeadline(d)
	for {
		data, closed, timedOut, err := nc.readChunk(chunkSize, dl)
		if closed || timedOut {
			break
		}
		if err != nil {
			nc.header("connection dropped")
			break
		}
		nc.buf = append(nc.buf, data...)
	}

	ret := nc.buf
	nc.buf = nil
	nc.mirrorRecv(ret)
	return ret
}
