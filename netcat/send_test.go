package netcat

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chokedConn accepts at most max bytes per write, so a single Send has
// to re-issue the remainder.
type chokedConn struct {
	wrote bytes.Buffer
	max   int
	calls int
}

func (c *chokedConn) Write(p []byte) (int, error) {
	c.calls++
	n := min(c.max, len(p))
	c.wrote.Write(p[:n])
	return n, nil
}

func (c *chokedConn) Read([]byte) (int, error)         { return 0, io.EOF }
func (c *chokedConn) Close() error                     { return nil }
func (c *chokedConn) LocalAddr() net.Addr              { return &net.TCPAddr{} }
func (c *chokedConn) RemoteAddr() net.Addr             { return &net.TCPAddr{} }
func (c *chokedConn) SetDeadline(time.Time) error      { return nil }
func (c *chokedConn) SetReadDeadline(time.Time) error  { return nil }
func (c *chokedConn) SetWriteDeadline(time.Time) error { return nil }

func TestSendRetriesPartialWrites(t *testing.T) {
	conn := &chokedConn{max: 3}
	nc, err := Wrap(conn)
	require.NoError(t, err)

	require.NoError(t, nc.Send([]byte("abcdefgh")))
	require.Equal(t, "abcdefgh", conn.wrote.String())
	require.Equal(t, 3, conn.calls)
}

func TestSendMirrorsSideChannel(t *testing.T) {
	var mirror bytes.Buffer
	conn := &chokedConn{max: 1024}
	nc, err := Wrap(conn, WithSendLog(&mirror))
	require.NoError(t, err)

	require.NoError(t, nc.Send([]byte("payload")))
	require.Equal(t, "payload", mirror.String())
	require.Equal(t, "payload", conn.wrote.String())
}
