package transport

import (
	"context"
	"net"
)

// Net dials over the operating system's socket networks (tcp, udp,
// unix). The zero value is ready to use.
type Net struct {
	Dialer net.Dialer
}

func (t *Net) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	return t.Dialer.DialContext(ctx, network, address)
}

// Listen announces on an OS socket network. The stdlib listener already
// satisfies the Listener interface.
func (t *Net) Listen(network, address string) (Listener, error) {
	return net.Listen(network, address)
}

var _ Dialer = (*Net)(nil)
