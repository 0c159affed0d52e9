package util

import (
	"fmt"
	"net"
	"strconv"
)

// FormatAddr returns "host:port".
func FormatAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// PeerAddr returns the "address:port" form used on the console.  Unlike
// net.Addr.String it never brackets IPv6 hosts, and an IPv4-mapped
// address prints as plain IPv4.
func PeerAddr(addr net.Addr) string {
	switch a := addr.(type) {
	case *net.TCPAddr:
		ip := a.IP
		if v4 := ip.To4(); v4 != nil {
			ip = v4
		}
		return fmt.Sprintf("%s:%d", ip, a.Port)
	case nil:
		return "unknown"
	default:
		return addr.String()
	}
}

// FindFreePort returns an available TCP port on 127.0.0.1.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
