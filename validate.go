package main

import "net"

// Bounds of the IPv4 multicast block, in host order.
const (
	multicastFirst uint32 = 224 << 24
	multicastLast  uint32 = 239<<24 | 255<<16 | 255<<8 | 255
)

// addrNone is what a malformed network number converts to.
const addrNone uint32 = 0xffffffff

// parseNetwork converts a dotted network number to a host-order integer.
// Up to four parts are accepted, each decimal, octal (leading 0) or hex
// (leading 0x or x), and each no larger than 255. Fewer parts are packed
// towards the low end, so "1.2" is 0.0.1.2. Anything else is addrNone.
func parseNetwork(s string) uint32 {
	var (
		val   uint32
		parts int
	)
	i := 0
	for {
		if parts == 4 {
			return addrNone
		}
		base := uint32(10)
		digits := false
		if i < len(s) && s[i] == '0' {
			base, digits = 8, true
			i++
		}
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			base, digits = 16, false
			i++
		}
		var part uint32
		for ; i < len(s); i++ {
			d, ok := digitValue(s[i], base)
			if !ok {
				break
			}
			part = part*base + d
			if part > 0xff {
				return addrNone
			}
			digits = true
		}
		if !digits {
			return addrNone
		}
		val = val<<8 | part
		parts++
		if i < len(s) && s[i] == '.' {
			i++
			continue
		}
		break
	}
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		default:
			return addrNone
		}
	}
	return val
}

func digitValue(c byte, base uint32) (uint32, bool) {
	var d uint32
	switch {
	case c >= '0' && c <= '9':
		d = uint32(c - '0')
	case base == 16 && c >= 'a' && c <= 'f':
		d = uint32(c-'a') + 10
	case base == 16 && c >= 'A' && c <= 'F':
		d = uint32(c-'A') + 10
	default:
		return 0, false
	}
	if d >= base {
		return 0, false
	}
	return d, true
}

// validMulticastAddr reports whether s converts to a value inside
// 224.0.0.0 - 239.255.255.255.
func validMulticastAddr(s string) bool {
	if s == "" {
		return false
	}
	n := parseNetwork(s)
	return n >= multicastFirst && n <= multicastLast
}

func hostOrderIP(n uint32) net.IP {
	return net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n)).To4()
}
