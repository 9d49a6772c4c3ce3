package transport

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNetDialListenRoundTrip(t *testing.T) {
	var tn Net
	l, err := tn.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := l.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	client, err := tn.Dial(context.Background(), "tcp", l.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	var server net.Conn
	select {
	case server = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("no inbound connection")
	}
	defer server.Close()

	_, err = client.Write([]byte("hello"))
	require.NoError(t, err)
	got := make([]byte, 5)
	server.SetReadDeadline(time.Now().Add(time.Second))
	_, err = io.ReadFull(server, got)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestNetDialHonorsContext(t *testing.T) {
	var tn Net
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tn.Dial(ctx, "tcp", "127.0.0.1:1")
	require.Error(t, err)
}
