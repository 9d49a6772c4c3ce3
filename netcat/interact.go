package netcat

import (
	"context"
	"io"
	"time"
)

// aLongTimeAgo is a deadline in the past, used to knock a blocked read
// loose when the session is cancelled.
var aLongTimeAgo = time.Unix(1, 0)

type chunk struct {
	data []byte
	err  error
}

// pump moves chunks from one source onto a channel, preserving the
// source's byte order. It stops after delivering the first error.
func pump(r io.Reader, ch chan<- chunk) {
	for {
		p := make([]byte, chunkSize)
		n, err := r.Read(p)
		if n > 0 {
			ch <- chunk{data: p[:n]}
		}
		if err != nil {
			ch <- chunk{err: err}
			return
		}
	}
}

// Interact bridges the connection with a local input/output pair until
// the peer closes, the context is cancelled, or an I/O error occurs.
// All three end the session cleanly and are reported through the log
// channel rather than returned. Echo and headers are suppressed for the
// duration and restored on every exit path.
//
// Any residual buffer is flushed to out before the bridge starts. EOF
// on the local input disables that source but keeps draining the
// connection. This method cannot be used with a timeout.
func (nc *Netcat) Interact(ctx context.Context, in io.Reader, out io.Writer) {
	nc.timedOut = false
	nc.header("beginning interactive session")

	quiet := nc.quiet
	nc.quiet = true
	report := func(format string, args ...any) {
		nc.quiet = quiet
		nc.header(format, args...)
	}
	defer func() { nc.quiet = quiet }()

	nc.restoreDeadline()

	if len(nc.buf) > 0 {
		flushed := nc.consume(len(nc.buf))
		nc.mirrorRecv(flushed)
		if _, err := out.Write(flushed); err != nil {
			report("connection dropped: %v", err)
			return
		}
	}

	// Room for a final data chunk plus the error that follows it, so a
	// pump can finish even after the loop has returned.
	connCh := make(chan chunk, 2)
	inCh := make(chan chunk, 2)
	go pump(nc.sock, connCh)
	go pump(in, inCh)

	for {
		select {
		case <-ctx.Done():
			// Unblock the connection pump; the deadline is
			// restored before the next operation runs.
			nc.sock.SetReadDeadline(aLongTimeAgo)
			defer nc.restoreDeadline()
			// Bank anything the pump read but never delivered so
			// a later receive still sees it. The pump terminates
			// with an error chunk once the past deadline fires.
			for {
				c := <-connCh
				if c.err != nil || len(c.data) == 0 {
					break
				}
				nc.buf = append(nc.buf, c.data...)
			}
			report("connection interrupted")
			return

		case c := <-connCh:
			if c.err != nil || len(c.data) == 0 {
				report("connection dropped")
				return
			}
			nc.mirrorRecv(c.data)
			if _, err := out.Write(c.data); err != nil {
				report("connection dropped: %v", err)
				return
			}

		case c := <-inCh:
			if c.err != nil {
				// Local input ended; keep draining the peer.
				inCh = nil
				continue
			}
			if err := nc.Send(c.data); err != nil {
				report("connection dropped: %v", err)
				return
			}
		}
	}
}
