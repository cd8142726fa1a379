package main

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

// openInput binds a UDP socket to the wildcard address on port. The
// configured input address is informational and never used for binding.
func openInput(ctx context.Context, port int) (*ipv4.PacketConn, error) {
	var listenConfig net.ListenConfig
	listenAddress := fmt.Sprintf("0.0.0.0:%d", port)
	conn, err := listenConfig.ListenPacket(ctx, "udp4", listenAddress)
	if err != nil {
		return nil, fmt.Errorf("incoming bind: %w", err)
	}
	return ipv4.NewPacketConn(conn), nil
}

// Output is the sending socket together with the fixed multicast
// destination.
type Output struct {
	conn       *net.UDPConn
	packetConn *ipv4.PacketConn
	dst        *net.UDPAddr
}

func (out *Output) Close() error {
	return out.conn.Close()
}

func (out *Output) Destination() *net.UDPAddr {
	return out.dst
}

// openOutput creates the sending socket for cfg's multicast group and
// applies the optional TTL and egress interface.
func openOutput(cfg *Config) (*Output, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, fmt.Errorf("outgoing socket: %w", err)
	}
	out := &Output{
		conn:       conn,
		packetConn: ipv4.NewPacketConn(conn),
		dst:        &net.UDPAddr{IP: cfg.Group(), Port: cfg.OutputPort()},
	}

	if cfg.TTL > 0 {
		if err := out.packetConn.SetMulticastTTL(cfg.TTL); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting multicast TTL: %w", err)
		}
	}

	if cfg.OutputInterface != "" {
		ifaceIP := net.ParseIP(cfg.OutputInterface).To4()
		if ifaceIP == nil {
			conn.Close()
			return nil, fmt.Errorf("setting multicast interface: invalid IPv4 address %q", cfg.OutputInterface)
		}
		if err := setMulticastInterface(conn, out.packetConn, ifaceIP); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting multicast interface: %w", err)
		}
	}

	return out, nil
}
