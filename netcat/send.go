package netcat

// Send writes data until fully transmitted. Partial writes are normal
// and re-issued for the remainder. With an implicit peer the connected
// write path is used; otherwise datagrams are addressed to the peer
// learned at construction.
func (nc *Netcat) Send(data []byte) error {
	nc.header("sending (%dB)", len(data))
	nc.mirrorSend(data)

	for len(data) > 0 {
		var (
			n   int
			err error
		)
		if nc.peerImplicit {
			n, err = nc.sock.Write(data)
		} else {
			n, err = nc.packet.WriteTo(data, nc.peer)
		}
		if err != nil {
			return &IOError{Op: "send", Err: err}
		}
		data = data[n:]
	}
	return nil
}
