package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidMulticastAddr(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"224.0.0.0", true},
		{"239.255.255.255", true},
		{"239.5.5.5", true},
		{"224.0.0.251", true},
		{"223.255.255.255", false},
		{"240.0.0.0", false},
		{"255.255.255.255", false},
		{"0.0.0.0", false},
		{"", false},
		{"not-an-ip", false},
		{"239.1.1", false},   // packs to 0.239.1.1
		{"224", false},       // packs to 0.0.0.224
		{"0xe0.0.0.1", true}, // hex part
		{"0340.0.0.1", true}, // octal part
		{"239.1.1.256", false},
		{"239.1.1.1.1", false},
		{"239.1.1.", false},
		{"239.1.1.1 ", true},
		{"239.1.1.1x", false},
		{"08.1.1.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			require.Equal(t, tt.want, validMulticastAddr(tt.addr))
		})
	}
}

func TestParseNetwork(t *testing.T) {
	require.Equal(t, uint32(0xe0000001), parseNetwork("224.0.0.1"))
	require.Equal(t, uint32(0x0102), parseNetwork("1.2"))
	require.Equal(t, uint32(0x10), parseNetwork("x10"))
	require.Equal(t, addrNone, parseNetwork("0x"))
	require.Equal(t, addrNone, parseNetwork("1..2"))
	require.Equal(t, "239.5.5.5", hostOrderIP(parseNetwork("239.5.5.5")).String())
}
