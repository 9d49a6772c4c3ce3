// Package netcat is a netcat-style transport layer over a single stream
// or datagram connection. It keeps a residual buffer of bytes already
// drawn from the socket but not yet consumed, and offers deadline-bounded
// receive primitives, a write-all sender, and an interactive bridge that
// multiplexes the connection with a local input/output pair.
package netcat

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/netkat-io/netkat-core/logger"
)

// chunkSize bounds a single raw read.
const chunkSize = 4096

// firstDatagramSize bounds the peer-learning receive on an unconnected
// datagram socket.
const firstDatagramSize = 1024

// Timeout selects the deadline mode of a single receive call.
type Timeout int64

const (
	// Default applies the connection's persistent timeout.
	Default Timeout = -1
	// Forever blocks until the operation's contract is satisfied.
	Forever Timeout = 0
)

// In bounds a call by an explicit duration. Non-positive durations mean
// block forever.
func In(d time.Duration) Timeout {
	if d <= 0 {
		return Forever
	}
	return Timeout(d)
}

// Netcat owns one connection, its residual buffer and its deadline state.
// It is not safe for concurrent use; every instance belongs to a single
// caller.
type Netcat struct {
	sock   net.Conn
	packet net.PacketConn // set only for the bind-and-learn-peer case
	peer   net.Addr
	// peerImplicit is true when the peer was fixed at construction
	// (dial, accept, wrap) and Send can use the connected write path.
	peerImplicit bool

	buf      []byte
	timeout  time.Duration // persistent default; 0 blocks forever
	timedOut bool

	log      logger.Logger
	verbose  bool
	headers  bool
	quiet    bool // suppresses echo and headers during Interact
	echoSend io.Writer
	echoRecv io.Writer
	sendLog  io.Writer
	recvLog  io.Writer
}

// Option configures a Netcat during construction.
type Option func(*Netcat)

// WithLogger routes operation headers and connection events to l.
func WithLogger(l logger.Logger) Option { return func(nc *Netcat) { nc.log = l } }

// Verbose enables the echo side channel and operation headers.
func Verbose(v bool) Option { return func(nc *Netcat) { nc.verbose = v } }

// WithHeaders controls whether each operation announces itself through
// the logger. On by default; effective only together with Verbose.
func WithHeaders(on bool) Option { return func(nc *Netcat) { nc.headers = on } }

// WithEcho installs human-readable echo writers for sent and received
// data. Either may be nil. Echo is gated by Verbose.
func WithEcho(send, recv io.Writer) Option {
	return func(nc *Netcat) {
		nc.echoSend = send
		nc.echoRecv = recv
	}
}

// WithSendLog mirrors every sent byte range to w, unconditionally.
func WithSendLog(w io.Writer) Option { return func(nc *Netcat) { nc.sendLog = w } }

// WithRecvLog mirrors every received byte range to w, unconditionally.
func WithRecvLog(w io.Writer) Option { return func(nc *Netcat) { nc.recvLog = w } }

// WithTimeout sets the persistent default timeout applied by calls made
// with Default. Zero blocks forever.
func WithTimeout(d time.Duration) Option { return func(nc *Netcat) { nc.timeout = d } }

func newNetcat(opts []Option) *Netcat {
	nc := &Netcat{
		log:     logger.Nop,
		headers: true,
	}
	for _, o := range opts {
		o(nc)
	}
	return nc
}

// Wrap adopts an already connected conn.
func Wrap(conn net.Conn, opts ...Option) (*Netcat, error) {
	if conn == nil {
		return nil, ErrSetup
	}
	nc := newNetcat(opts)
	nc.sock = conn
	nc.peer = conn.RemoteAddr()
	nc.peerImplicit = true
	return nc, nil
}

// Dial connects to a remote address. The network is anything net.Dial
// accepts; datagram networks yield a connected socket, so the peer is
// implicit either way.
func Dial(network, address string, opts ...Option) (*Netcat, error) {
	if address == "" {
		return nil, ErrSetup
	}
	conn, err := net.Dial(network, address)
	if err != nil {
		return nil, &IOError{Op: "dial", Err: err}
	}
	nc := newNetcat(opts)
	nc.sock = conn
	nc.peer = conn.RemoteAddr()
	nc.peerImplicit = true
	return nc, nil
}

// Listen binds to a local address and waits for one peer. On stream
// networks it accepts a single client and closes the listener. On
// datagram networks it blocks for the first datagram, records its sender
// as the peer, and retains the payload in the residual buffer so it is
// never lost; Send then targets the learned address explicitly.
func Listen(network, address string, opts ...Option) (*Netcat, error) {
	if address == "" {
		return nil, ErrSetup
	}
	nc := newNetcat(opts)
	if isStream(network) {
		l, err := net.Listen(network, address)
		if err != nil {
			return nil, &IOError{Op: "listen", Err: err}
		}
		conn, err := l.Accept()
		l.Close()
		if err != nil {
			return nil, &IOError{Op: "accept", Err: err}
		}
		nc.sock = conn
		nc.peer = conn.RemoteAddr()
		nc.peerImplicit = true
	} else {
		pc, err := net.ListenPacket(network, address)
		if err != nil {
			return nil, &IOError{Op: "listen", Err: err}
		}
		if err := nc.learnPeer(pc); err != nil {
			pc.Close()
			return nil, err
		}
	}
	nc.header("connection from %v accepted", nc.peer)
	return nc, nil
}

// WrapPacket adopts an unconnected datagram socket. It blocks for the
// first datagram to learn the peer address, keeping the payload in the
// residual buffer; Send then addresses that peer explicitly.
func WrapPacket(pc net.PacketConn, opts ...Option) (*Netcat, error) {
	if pc == nil {
		return nil, ErrSetup
	}
	nc := newNetcat(opts)
	if err := nc.learnPeer(pc); err != nil {
		return nil, err
	}
	nc.header("connection from %v accepted", nc.peer)
	return nc, nil
}

// learnPeer performs the one blocking receive that fixes the remote
// address of an unconnected datagram socket. The first payload is
// captured so it is never lost.
func (nc *Netcat) learnPeer(pc net.PacketConn) error {
	conn, ok := pc.(net.Conn)
	if !ok {
		return ErrSetup
	}
	p := make([]byte, firstDatagramSize)
	n, addr, err := pc.ReadFrom(p)
	if err != nil {
		return &IOError{Op: "read", Err: err}
	}
	nc.sock = conn
	nc.packet = pc
	nc.peer = addr
	nc.peerImplicit = false
	nc.buf = append(nc.buf, p[:n]...)
	return nil
}

func isStream(network string) bool {
	return strings.HasPrefix(network, "tcp") || network == "unix"
}

// Peer returns the remote address, learned or fixed at construction.
func (nc *Netcat) Peer() net.Addr { return nc.peer }

// LocalAddr returns the local address of the underlying connection.
func (nc *Netcat) LocalAddr() net.Addr { return nc.sock.LocalAddr() }

// TimedOut reports whether the most recent receive operation stopped
// because its deadline expired rather than satisfying its contract.
func (nc *Netcat) TimedOut() bool { return nc.timedOut }

// Buffered returns the number of residual bytes available without a raw
// read.
func (nc *Netcat) Buffered() int { return len(nc.buf) }

// SetTimeout replaces the persistent default timeout. Zero blocks
// forever.
func (nc *Netcat) SetTimeout(d time.Duration) { nc.timeout = d }

// Close closes the underlying connection.
func (nc *Netcat) Close() error { return nc.sock.Close() }

// ShutdownHow selects the direction closed by Shutdown.
type ShutdownHow int

const (
	ShutRead ShutdownHow = iota
	ShutWrite
	ShutBoth
)

// Shutdown half-closes the connection in the given direction, when the
// underlying connection supports it (TCP and Unix stream sockets do).
func (nc *Netcat) Shutdown(how ShutdownHow) error {
	type readCloser interface{ CloseRead() error }
	type writeCloser interface{ CloseWrite() error }

	if how == ShutRead || how == ShutBoth {
		rc, ok := nc.sock.(readCloser)
		if !ok {
			return &IOError{Op: "shutdown", Err: errors.ErrUnsupported}
		}
		if err := rc.CloseRead(); err != nil {
			return &IOError{Op: "shutdown", Err: err}
		}
	}
	if how == ShutWrite || how == ShutBoth {
		wc, ok := nc.sock.(writeCloser)
		if !ok {
			return &IOError{Op: "shutdown", Err: errors.ErrUnsupported}
		}
		if err := wc.CloseWrite(); err != nil {
			return &IOError{Op: "shutdown", Err: err}
		}
	}
	return nil
}

// header announces an operation through the logger. Suppressed while an
// interactive session is running.
func (nc *Netcat) header(format string, args ...any) {
	if nc.verbose && nc.headers && !nc.quiet {
		nc.log.Infof(format, args...)
	}
}

// mirrorRecv funnels a received byte range through the side channel,
// once per logical operation.
func (nc *Netcat) mirrorRecv(data []byte) {
	if len(data) == 0 {
		return
	}
	if nc.verbose && !nc.quiet && nc.echoRecv != nil {
		nc.echoRecv.Write(data)
	}
	if nc.recvLog != nil {
		nc.recvLog.Write(data)
	}
}

// mirrorSend funnels a sent byte range through the side channel.
func (nc *Netcat) mirrorSend(data []byte) {
	if len(data) == 0 {
		return
	}
	if nc.verbose && !nc.quiet && nc.echoSend != nil {
		nc.echoSend.Write(data)
	}
	if nc.sendLog != nil {
		nc.sendLog.Write(data)
	}
}

// consume removes and returns the first n buffered bytes.
func (nc *Netcat) consume(n int) []byte {
	ret := nc.buf[:n]
	nc.buf = nc.buf[n:]
	return ret
}
