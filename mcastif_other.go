//go:build !linux

package main

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

// setMulticastInterface looks up the interface that owns addr and makes
// it the multicast egress interface. Other platforms do not all accept a
// bare address for IP_MULTICAST_IF, so go through the interface instead.
func setMulticastInterface(_ *net.UDPConn, packetConn *ipv4.PacketConn, addr net.IP) error {
	iface, err := interfaceByAddr(addr)
	if err != nil {
		return err
	}
	return packetConn.SetMulticastInterface(iface)
}

func interfaceByAddr(addr net.IP) (*net.Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			var ip net.IP
			switch a := a.(type) {
			case *net.IPNet:
				ip = a.IP
			case *net.IPAddr:
				ip = a.IP
			}
			if ip != nil && ip.Equal(addr) {
				return &ifaces[i], nil
			}
		}
	}
	return nil, fmt.Errorf("no interface has address %s", addr)
}
