package main

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// maxAddrLen is the longest address string accepted on the command line
// (INET_ADDRSTRLEN minus the terminator).
const maxAddrLen = 15

var (
	errUsage   = errors.New("invalid arguments")
	errHelp    = errors.New("help requested")
	errVersion = errors.New("version requested")
)

type Config struct {
	InputAddress     string // informational only; the listener binds to all interfaces
	InputPort        int
	MulticastAddress string
	MulticastPort    int    // 0 means "same as InputPort"
	OutputInterface  string // optional
	TTL              int    // 0 leaves the OS default
	MetricsAddress   string // optional host:port for /metrics
	Verbose          bool
}

// OutputPort is the destination port for the multicast stream.
func (cfg *Config) OutputPort() int {
	if cfg.MulticastPort == 0 {
		return cfg.InputPort
	}
	return cfg.MulticastPort
}

// Group is the numeric multicast destination accepted by validMulticastAddr.
func (cfg *Config) Group() net.IP {
	return hostOrderIP(parseNetwork(cfg.MulticastAddress))
}

// scanPort reads an unsigned number the way "%5u" would: leading blanks
// are skipped, an optional '+' is allowed, and at most five characters
// are consumed. Anything unparseable or negative is 0.
func scanPort(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	if len(s) > 5 {
		s = s[:5]
	}
	s = strings.TrimPrefix(s, "+")
	port := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		port = port*10 + int(s[i]-'0')
	}
	return port
}

// parsePort is scanPort with values above 65535 mapped to 0.
func parsePort(s string) int {
	port := scanPort(s)
	if port > 65535 {
		return 0
	}
	return port
}

// splitAddr splits "addr:port" on the first colon. The address part is
// length checked.
func splitAddr(value string) (addr, port string, hasPort bool, err error) {
	addr, port, hasPort = strings.Cut(value, ":")
	if len(addr) > maxAddrLen {
		return "", "", false, fmt.Errorf("%w: address %q too long", errUsage, addr)
	}
	return addr, port, hasPort, nil
}

// parseArgs scans the argument list (without the program name). Tokens
// that are not recognised, and flags given without a value, are skipped.
func parseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	cfg := &Config{}
	for argn := 0; argn < len(args); argn++ {
		hasValue := argn+1 < len(args)
		switch {
		case args[argn] == "-i" && hasValue:
			argn++
			addr, port, hasPort, err := splitAddr(args[argn])
			if err != nil {
				return nil, err
			}
			if !hasPort {
				return nil, fmt.Errorf("%w: -i %q has no port", errUsage, args[argn])
			}
			cfg.InputAddress = addr
			cfg.InputPort = parsePort(port)

		case args[argn] == "-m" && hasValue:
			argn++
			addr, port, hasPort, err := splitAddr(args[argn])
			if err != nil {
				return nil, err
			}
			cfg.MulticastAddress = addr
			if hasPort {
				if scanPort(port) > 65535 {
					return nil, fmt.Errorf("%w: -m port %q out of range", errUsage, port)
				}
				cfg.MulticastPort = parsePort(port)
			}

		case args[argn] == "-o" && hasValue:
			argn++
			if len(args[argn]) > maxAddrLen {
				return nil, fmt.Errorf("%w: address %q too long", errUsage, args[argn])
			}
			cfg.OutputInterface = args[argn]

		case args[argn] == "-t" && hasValue:
			argn++
			ttl := parsePort(args[argn])
			if ttl < 1 || ttl > 255 {
				return nil, fmt.Errorf("%w: invalid TTL %q", errUsage, args[argn])
			}
			cfg.TTL = ttl

		case args[argn] == "-metrics" && hasValue:
			argn++
			cfg.MetricsAddress = args[argn]

		case args[argn] == "-v":
			cfg.Verbose = true

		case args[argn] == "-version":
			return nil, errVersion

		case args[argn] == "-h" || args[argn] == "-help":
			return nil, errHelp
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.InputPort == 0 {
		return fmt.Errorf("%w: missing or invalid input port", errUsage)
	}
	if cfg.InputAddress == "" {
		return fmt.Errorf("%w: missing input address", errUsage)
	}
	if !validMulticastAddr(cfg.MulticastAddress) {
		return fmt.Errorf("%w: %q is not a multicast address", errUsage, cfg.MulticastAddress)
	}
	return nil
}
