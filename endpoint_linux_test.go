//go:build linux

package main

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/ipv4"
)

func TestOpenOutputLoopbackInterface(t *testing.T) {
	cfg, err := parseArgs([]string{"-i", "0.0.0.0:9000", "-m", "239.5.5.5:9001", "-o", "127.0.0.1"})
	require.NoError(t, err)

	out, err := openOutput(cfg)
	require.NoError(t, err)
	require.NoError(t, out.Close())
}

func TestRelayToMulticastGroupOnLoopback(t *testing.T) {
	lo, err := net.InterfaceByName("lo")
	require.NoError(t, err)

	group := net.IPv4(239, 5, 5, 5)
	groupPort := freeUDPPort(t)
	conn, err := net.ListenPacket("udp4", fmt.Sprintf("0.0.0.0:%d", groupPort))
	require.NoError(t, err)
	defer conn.Close()
	receiver := ipv4.NewPacketConn(conn)
	require.NoError(t, receiver.JoinGroup(lo, &net.UDPAddr{IP: group}))

	inputPort := freeUDPPort(t)
	cfg, err := parseArgs([]string{
		"-i", fmt.Sprintf("0.0.0.0:%d", inputPort),
		"-m", fmt.Sprintf("239.5.5.5:%d", groupPort),
		"-o", "127.0.0.1",
	})
	require.NoError(t, err)

	relay, err := setup(context.Background(), cfg)
	require.NoError(t, err)
	defer relay.Close()
	done := startRelay(context.Background(), relay)

	sender, err := net.ListenUDP("udp4", &net.UDPAddr{IP: loopback})
	require.NoError(t, err)
	defer sender.Close()
	inputAddr := &net.UDPAddr{IP: loopback, Port: inputPort}

	_, err = sender.WriteToUDP([]byte("PING"), inputAddr)
	require.NoError(t, err)

	buf := make([]byte, maxDatagramSize)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	n, _, src, err := receiver.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, "PING", string(buf[:n]))
	require.True(t, src.(*net.UDPAddr).IP.Equal(loopback), "source %v", src)

	// Exactly one copy arrives.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, _, err = receiver.ReadFrom(buf)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	require.True(t, netErr.Timeout())

	_, err = sender.WriteToUDP(nil, inputAddr)
	require.NoError(t, err)
	require.NoError(t, waitDone(t, done))
}
