package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type relayMetrics struct {
	datagramsForwarded prometheus.Counter
	bytesForwarded     prometheus.Counter
	endOfStream        prometheus.Counter
}

// newRelayMetrics creates the forward counters labelled with the
// destination group and port, and registers them with reg.
func newRelayMetrics(reg prometheus.Registerer, dst *net.UDPAddr) *relayMetrics {
	labels := prometheus.Labels{"grp_address": dst.IP.String(), "port": strconv.Itoa(dst.Port)}
	m := &relayMetrics{
		datagramsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "unicast2multicast_datagrams_forwarded_total",
			Help:        "Number of datagrams repeated to the multicast group since start.",
			ConstLabels: labels,
		}),
		bytesForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "unicast2multicast_bytes_forwarded_total",
			Help:        "Number of payload bytes repeated to the multicast group since start.",
			ConstLabels: labels,
		}),
		endOfStream: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "unicast2multicast_end_of_stream_total",
			Help:        "Number of zero-length datagrams received (end of stream).",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(m.datagramsForwarded, m.bytesForwarded, m.endOfStream)
	return m
}

func (m *relayMetrics) forwarded(n int) {
	if m == nil {
		return
	}
	m.datagramsForwarded.Inc()
	m.bytesForwarded.Add(float64(n))
}

func (m *relayMetrics) streamEnded() {
	if m == nil {
		return
	}
	m.endOfStream.Inc()
}

// serveMetrics listens on addr and serves reg on /metrics in the
// background. Only the listen error is reported; serve errors are logged.
func serveMetrics(addr string, reg *prometheus.Registry) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	go func() {
		if err := http.Serve(listener, mux); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	return listener, nil
}
