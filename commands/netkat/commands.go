// Package netkat assembles the netkat command-line tool: dial or listen
// on one endpoint, then bridge it with the local terminal.
package netkat

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/netkat-io/netkat-core/core"
	"github.com/netkat-io/netkat-core/echo"
	"github.com/netkat-io/netkat-core/netcat"
	"github.com/netkat-io/netkat-core/transport"
	"github.com/netkat-io/netkat-core/ui"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	var (
		conf    core.Config
		listen  bool
		udp     bool
		rawMode bool
	)
	conf.Default()

	cmd := cobra.Command{
		Use:   "netkat [host] port | netkat ws://url",
		Short: "Netcat-style byte plumbing over TCP, UDP and websocket connections",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.FromCmdline(cmd.Flags()); err != nil {
				return err
			}
			return run(cmd.Context(), &conf, args, listen, udp, rawMode)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	conf.RegisterFlags(f, &cmd)
	f.BoolVarP(&listen, "listen", "l", false, "Listen for one inbound connection instead of dialing")
	f.BoolVarP(&udp, "udp", "u", false, "Use UDP instead of TCP")
	f.BoolVar(&rawMode, "raw", false, "Put the terminal into raw mode for the session")

	cmd.AddCommand(newConfigInitCommand())
	return &cmd
}

func newConfigInitCommand() *cobra.Command {
	var conf core.Config
	conf.Default()

	cmd := cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with the provided parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config-file")
			if err != nil {
				panic(err)
			}
			if path == "" {
				path = core.DefaultConfigFile
			}
			if err := core.SaveConfig(&conf, path); err != nil {
				return err
			}
			fmt.Printf("Configuration file %s is successfully created\n", path)
			return nil
		},
	}
	conf.RegisterFlags(cmd.Flags(), &cmd)
	return &cmd
}

func run(ctx context.Context, conf *core.Config, args []string, listen, udp, rawMode bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := core.NewLogger(conf)

	opts := []netcat.Option{
		netcat.WithLogger(log),
		netcat.Verbose(conf.Verbose),
		netcat.WithTimeout(conf.Timeout),
	}
	if conf.Verbose {
		var sendEcho, recvEcho io.Writer
		if conf.Hex {
			sendEcho = echo.NewHex(os.Stderr, ">> ")
			recvEcho = echo.NewHex(os.Stderr, "<< ")
		} else {
			sendEcho = echo.NewLine(os.Stderr, ">> ")
			recvEcho = echo.NewLine(os.Stderr, "<< ")
		}
		opts = append(opts, netcat.WithEcho(sendEcho, recvEcho))
	}
	if conf.OutputFile != "" {
		out, err := os.OpenFile(conf.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		defer out.Close()
		opts = append(opts, netcat.WithSendLog(out), netcat.WithRecvLog(out))
	}

	nc, err := open(ctx, args, listen, udp, opts)
	if err != nil {
		return err
	}
	defer nc.Close()

	if rawMode && ui.IsTerminal(os.Stdin) {
		t, err := ui.MakeRaw(os.Stdin)
		if err != nil {
			return err
		}
		defer t.Restore()
	}

	nc.Interact(ctx, os.Stdin, os.Stdout)
	return nil
}

func open(ctx context.Context, args []string, listen, udp bool, opts []netcat.Option) (*netcat.Netcat, error) {
	address := args[0]
	if len(args) == 2 {
		address = net.JoinHostPort(args[0], args[1])
	}

	if strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://") {
		conn, err := dialWebSocket(ctx, address, listen)
		if err != nil {
			return nil, err
		}
		return netcat.Wrap(conn, opts...)
	}

	network := "tcp"
	if udp {
		network = "udp"
	}
	if listen {
		if udp {
			// Datagram listeners learn their peer from the first packet.
			return netcat.Listen(network, address, opts...)
		}
		var tn transport.Net
		l, err := tn.Listen(network, address)
		if err != nil {
			return nil, err
		}
		defer l.Close()
		conn, err := l.Accept()
		if err != nil {
			return nil, err
		}
		return netcat.Wrap(conn, opts...)
	}
	var tn transport.Net
	conn, err := tn.Dial(ctx, network, address)
	if err != nil {
		return nil, err
	}
	return netcat.Wrap(conn, opts...)
}

func dialWebSocket(ctx context.Context, address string, listen bool) (net.Conn, error) {
	if listen {
		hostport := strings.TrimPrefix(strings.TrimPrefix(address, "wss://"), "ws://")
		l, err := transport.ListenWebSocket(hostport)
		if err != nil {
			return nil, err
		}
		defer l.Close()
		return l.Accept()
	}
	var ws transport.WebSocket
	return ws.Dial(ctx, "tcp", address)
}
