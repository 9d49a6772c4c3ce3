package transport

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWebSocketByteStream(t *testing.T) {
	l, err := ListenWebSocket("127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := l.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	var ws WebSocket
	client, err := ws.Dial(context.Background(), "tcp", "ws://"+l.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	var server net.Conn
	select {
	case server = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("no inbound connection")
	}
	defer server.Close()

	// message boundaries must flatten into one ordered byte stream
	_, err = server.Write([]byte("ab"))
	require.NoError(t, err)
	_, err = server.Write([]byte("cd"))
	require.NoError(t, err)

	buf := make([]byte, 3)
	_, err = io.ReadFull(client, buf)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), buf)

	_, err = io.ReadFull(client, buf[:1])
	require.NoError(t, err)
	require.Equal(t, byte('d'), buf[0])

	_, err = client.Write([]byte("ping"))
	require.NoError(t, err)
	got := make([]byte, 4)
	server.SetReadDeadline(time.Now().Add(time.Second))
	_, err = io.ReadFull(server, got)
	require.NoError(t, err)
	require.Equal(t, []byte("ping"), got)
}
