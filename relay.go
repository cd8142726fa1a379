package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"golang.org/x/net/ipv4"
)

// maxDatagramSize covers jumbo-frame payloads.
const maxDatagramSize = 9000

// Relay repeats every datagram read from the input socket, unchanged,
// to the output destination. One read yields exactly one write.
type Relay struct {
	input   *ipv4.PacketConn
	output  *Output
	metrics *relayMetrics
	verbose bool

	buf [maxDatagramSize]byte
}

func newRelay(input *ipv4.PacketConn, output *Output, metrics *relayMetrics, verbose bool) *Relay {
	return &Relay{
		input:   input,
		output:  output,
		metrics: metrics,
		verbose: verbose,
	}
}

func (relay *Relay) Close() error {
	err := relay.input.Close()
	if outErr := relay.output.Close(); err == nil {
		err = outErr
	}
	return err
}

// Run forwards datagrams until a zero-length datagram arrives (returns
// nil), an I/O error occurs, or ctx is cancelled (returns nil once the
// input socket has been closed).
func (relay *Relay) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { relay.input.Close() })
	defer stop()

	dst := relay.output.dst
	for {
		n, _, src, err := relay.input.ReadFrom(relay.buf[:])
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("recvfrom: %w", err)
		}
		if n == 0 {
			if relay.verbose {
				log.Printf("End of stream from %v", src)
			}
			relay.metrics.streamEnded()
			return nil
		}

		if relay.verbose {
			log.Printf("Repeating from %v to %v (%d bytes)", src, dst, n)
		}
		if _, err := relay.output.packetConn.WriteTo(relay.buf[:n], nil, dst); err != nil {
			return fmt.Errorf("sendto: %w", err)
		}
		relay.metrics.forwarded(n)
	}
}
