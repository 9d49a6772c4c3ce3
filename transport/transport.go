// Package transport abstracts how the single connection underneath a
// netcat session is established. Implementations cover plain TCP, UDP
// and Unix sockets as well as websocket endpoints; whatever they
// produce is an ordinary net.Conn the netcat core runs over unchanged.
package transport

import (
	"context"
	"net"
)

// Dialer opens one outbound connection.
type Dialer interface {
	Dial(ctx context.Context, network, address string) (net.Conn, error)
}

// Listener accepts inbound connections.
type Listener interface {
	Accept() (net.Conn, error)
	Addr() net.Addr
	Close() error
}
