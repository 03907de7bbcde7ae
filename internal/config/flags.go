package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// commandLineSource reads `--key=value` style arguments.
//
// Accepted forms:
//
//	--key=value   --key value
//	/key=value    /key value
//	-key=value
//	key=value
//
// Arguments that match none of the forms, and a trailing switch with no
// value, are ignored.
type commandLineSource struct {
	args []string
}

func newCommandLineSource(args []string) *commandLineSource {
	return &commandLineSource{args: args}
}

func (s *commandLineSource) Info() SourceInfo {
	return SourceInfo{
		Name: "command line",
		Rank: RankCommandLine,
	}
}

func (s *commandLineSource) Load() (map[string]string, error) {
	return ParseArgs(s.args), nil
}

// ParseArgs converts command-line arguments into configuration pairs. When a
// key is repeated the last occurrence wins.
func ParseArgs(args []string) map[string]string {
	values := make(map[string]string)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		var body string
		var prefixLen int
		switch {
		case strings.HasPrefix(arg, "--"):
			body, prefixLen = arg[2:], 2
		case strings.HasPrefix(arg, "/"):
			body, prefixLen = arg[1:], 1
		case strings.HasPrefix(arg, "-"):
			body, prefixLen = arg[1:], 1
		default:
			body = arg
		}

		key, value, hasValue := strings.Cut(body, "=")
		if key == "" {
			continue
		}
		if !hasValue {
			// bare words and single-dash switches need an explicit `=`
			if prefixLen == 0 || (prefixLen == 1 && arg[0] == '-') {
				continue
			}
			if i+1 >= len(args) {
				continue
			}
			i++
			value = args[i]
		}

		values[key] = value
	}

	return values
}

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value and encoding.TextUnmarshaler interfaces.
type NetAddress struct {
	Host string
	Port int
}

// String returns a canonical host:port string for a NetAddress.
// IPv6 hosts are bracketed. If neither Host nor Port are set, it returns an
// empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port (or [ipv6]:port) and
// populates the NetAddress. It validates the port range, checks IP
// correctness unless host is "localhost", and returns an error if the format
// or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler so the address can be
// bound straight from the configuration.
func (a *NetAddress) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}

// MarshalJSON renders the address as its host:port string.
func (a NetAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
