package netcat

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInteractBridgesBothDirections(t *testing.T) {
	c1, c2 := net.Pipe()
	t.Cleanup(func() {
		c1.Close()
		c2.Close()
	})
	nc, err := Wrap(c1)
	require.NoError(t, err)

	inR, inW := io.Pipe()
	var out bytes.Buffer

	var toPeer []byte
	peerDone := make(chan struct{})
	go func() {
		defer close(peerDone)
		b := make([]byte, 5)
		if _, err := io.ReadFull(c2, b); err == nil {
			toPeer = b
		}
		c2.Write([]byte("world"))
		c2.Close()
	}()
	go func() {
		inW.Write([]byte("hello"))
		inW.Close()
	}()

	nc.Interact(context.Background(), inR, &out)
	<-peerDone

	require.Equal(t, []byte("hello"), toPeer)
	require.Equal(t, "world", out.String())
}

func TestInteractFlushesResidualFirst(t *testing.T) {
	c1, c2 := net.Pipe()
	t.Cleanup(func() {
		c1.Close()
		c2.Close()
	})
	nc, err := Wrap(c1)
	require.NoError(t, err)
	nc.buf = []byte("banked")

	go c2.Close()

	var out bytes.Buffer
	nc.Interact(context.Background(), strings.NewReader(""), &out)
	require.Equal(t, "banked", out.String())
	require.Zero(t, nc.Buffered())
}

func TestInteractPreservesPerSourceOrder(t *testing.T) {
	c1, c2 := net.Pipe()
	t.Cleanup(func() {
		c1.Close()
		c2.Close()
	})
	nc, err := Wrap(c1)
	require.NoError(t, err)

	go func() {
		for _, s := range []string{"one ", "two ", "three"} {
			c2.Write([]byte(s))
		}
		c2.Close()
	}()

	var out bytes.Buffer
	nc.Interact(context.Background(), strings.NewReader(""), &out)
	require.Equal(t, "one two three", out.String())
}

func TestInteractCancel(t *testing.T) {
	c1, c2 := net.Pipe()
	t.Cleanup(func() {
		c1.Close()
		c2.Close()
	})
	nc, err := Wrap(c1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	inR, _ := io.Pipe() // local input that never produces anything
	var out bytes.Buffer

	start := time.Now()
	nc.Interact(ctx, inR, &out)
	require.Less(t, time.Since(start), time.Second)
}

func TestInteractCancelKeepsUndeliveredBytes(t *testing.T) {
	c1, c2 := net.Pipe()
	t.Cleanup(func() {
		c1.Close()
		c2.Close()
	})
	nc, err := Wrap(c1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// net.Pipe writes rendezvous with the reader, so both
		// chunks have been read off the socket before cancel.
		c2.Write([]byte("first"))
		c2.Write([]byte("second"))
		cancel()
	}()

	inR, _ := io.Pipe() // local input that never produces anything
	var out bytes.Buffer
	nc.Interact(ctx, inR, &out)

	// every byte read from the socket is either delivered or banked
	require.Equal(t, "firstsecond", out.String()+string(nc.buf))
}
