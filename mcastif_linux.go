//go:build linux

package main

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// setMulticastInterface selects the egress interface for multicast by
// its local IPv4 address (IP_MULTICAST_IF with an in_addr). The kernel
// rejects addresses that no local interface owns.
func setMulticastInterface(conn *net.UDPConn, _ *ipv4.PacketConn, addr net.IP) error {
	var inAddr [4]byte
	copy(inAddr[:], addr.To4())

	rawConn, err := conn.SyscallConn()
	if err != nil {
		return fmt.Errorf("raw conn: %w", err)
	}
	var controlError error
	if err := rawConn.Control(func(fd uintptr) {
		controlError = unix.SetsockoptInet4Addr(int(fd), unix.IPPROTO_IP, unix.IP_MULTICAST_IF, inAddr)
	}); err != nil {
		return fmt.Errorf("raw control error: %w", err)
	}
	return controlError
}
