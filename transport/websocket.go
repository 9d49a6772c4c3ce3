package transport

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket dials websocket endpoints and presents them as byte
// streams. The address is a ws:// or wss:// URL; the network argument
// is ignored.
type WebSocket struct {
	Dialer *websocket.Dialer
}

func (t *WebSocket) Dial(ctx context.Context, _ string, address string) (net.Conn, error) {
	d := t.Dialer
	if d == nil {
		d = websocket.DefaultDialer
	}
	ws, resp, err := d.DialContext(ctx, address, nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return &wsConn{ws: ws}, nil
}

var _ Dialer = (*WebSocket)(nil)

// wsConn flattens websocket messages into a continuous byte stream.
// The unread tail of the current message is retained across Read calls
// so message boundaries never drop bytes.
type wsConn struct {
	ws       *websocket.Conn
	residual []byte
}

func (c *wsConn) Read(p []byte) (int, error) {
	for len(c.residual) == 0 {
		t, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		if t == websocket.BinaryMessage || t == websocket.TextMessage {
			c.residual = data
		}
	}
	n := copy(p, c.residual)
	c.residual = c.residual[n:]
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.ws.Close()
}

func (c *wsConn) LocalAddr() net.Addr  { return c.ws.LocalAddr() }
func (c *wsConn) RemoteAddr() net.Addr { return c.ws.RemoteAddr() }

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.ws.SetReadDeadline(t); err != nil {
		return err
	}
	return c.ws.SetWriteDeadline(t)
}

func (c *wsConn) SetReadDeadline(t time.Time) error  { return c.ws.SetReadDeadline(t) }
func (c *wsConn) SetWriteDeadline(t time.Time) error { return c.ws.SetWriteDeadline(t) }

var _ net.Conn = (*wsConn)(nil)

// wsListener upgrades inbound HTTP requests and hands the resulting
// streams to Accept.
type wsListener struct {
	base  net.Listener
	srv   *http.Server
	conns chan net.Conn
	done  chan struct{}
}

// ListenWebSocket serves a websocket endpoint on the given TCP address
// and yields each upgraded connection as a net.Conn.
func ListenWebSocket(address string) (Listener, error) {
	base, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	l := &wsListener{
		base:  base,
		conns: make(chan net.Conn),
		done:  make(chan struct{}),
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		select {
		case l.conns <- &wsConn{ws: ws}:
		case <-l.done:
			ws.Close()
		}
	})
	l.srv = &http.Server{Handler: mux}
	go l.srv.Serve(base)
	return l, nil
}

func (l *wsListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *wsListener) Addr() net.Addr { return l.base.Addr() }

func (l *wsListener) Close() error {
	close(l.done)
	return l.srv.Close()
}
