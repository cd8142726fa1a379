// unicast2multicast
//
// Receives a unicast UDP stream on a local port and repeats each datagram,
// byte for byte, to an IPv4 multicast group. The outbound multicast
// interface can be chosen by its local address.
//
// The relay is best-effort and stateless: no retransmission, reordering or
// flow control. A zero-length datagram ends the stream and the program
// exits successfully; any socket error is fatal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
)

// Version can be set at build time with -ldflags "-X main.Version=x.y.z"
var Version = ""

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "unicast2multicast - unicast to multicast bridge\n\n")
	fmt.Fprintf(w, "Syntax: -i incoming_ip:port -m multicast_group[:port] [-o outgoing_ip]\n")
	fmt.Fprintln(w, "\nOptions:")
	fmt.Fprintln(w, "  -i ip:port          Input address (informational) and UDP port to listen on")
	fmt.Fprintln(w, "  -m group[:port]     Multicast group and port (default: input port)")
	fmt.Fprintln(w, "  -o ip               Local interface address for multicast output")
	fmt.Fprintln(w, "  -t ttl              Multicast TTL (default: system default)")
	fmt.Fprintln(w, "  -metrics host:port  Serve Prometheus metrics on /metrics")
	fmt.Fprintln(w, "  -v                  Verbose output (debug)")
	fmt.Fprintln(w, "  -version            Print version and exit")
	fmt.Fprintln(w, "  -h, -help           Print this help and exit")
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	switch {
	case errors.Is(err, errVersion):
		fmt.Println("unicast2multicast", version())
		os.Exit(0)
	case errors.Is(err, errHelp):
		usage(os.Stderr)
		os.Exit(0)
	case err != nil:
		if err != errUsage {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		}
		usage(os.Stderr)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay, err := setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer relay.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Printf("Received %v, shutting down...", sig)
		cancel()
	}()

	if err := relay.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

// setup opens both endpoints and, if requested, the metrics listener.
func setup(ctx context.Context, cfg *Config) (*Relay, error) {
	input, err := openInput(ctx, cfg.InputPort)
	if err != nil {
		return nil, err
	}
	output, err := openOutput(cfg)
	if err != nil {
		input.Close()
		return nil, err
	}

	var metrics *relayMetrics
	if cfg.MetricsAddress != "" {
		reg := prometheus.NewRegistry()
		metrics = newRelayMetrics(reg, output.Destination())
		if _, err := serveMetrics(cfg.MetricsAddress, reg); err != nil {
			input.Close()
			output.Close()
			return nil, err
		}
	}

	if cfg.Verbose {
		log.Printf("Listening on port %d (input %s), repeating to %v", cfg.InputPort, cfg.InputAddress, output.Destination())
	}
	return newRelay(input, output, metrics, cfg.Verbose), nil
}
