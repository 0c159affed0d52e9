//go:build unix

package transport

import (
	"context"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listen builds the socket by hand because net.Listen always uses the
// kernel's somaxconn as backlog.
func listen(_ context.Context, ep Endpoint) (net.Listener, error) {
	ip := net.ParseIP(ep.Host)
	if ip == nil {
		return nil, fmt.Errorf("invalid bind address %q", ep.Host)
	}
	family, sa := sockaddr(ip, ep.Port)

	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd) //nolint:errcheck
		return nil, os.NewSyscallError("setsockopt", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd) //nolint:errcheck
		return nil, os.NewSyscallError("bind", err)
	}
	if err := unix.Listen(fd, ep.Backlog); err != nil {
		unix.Close(fd) //nolint:errcheck
		return nil, os.NewSyscallError("listen", err)
	}

	// FileListener dups the descriptor, so the original is closed
	// either way.
	f := os.NewFile(uintptr(fd), "tcpinspect:"+ep.Address())
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("wrap listener: %w", err)
	}
	return ln, nil
}

func sockaddr(ip net.IP, port int) (int, unix.Sockaddr) {
	if v4 := ip.To4(); v4 != nil {
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], v4)
		return unix.AF_INET, sa
	}
	sa := &unix.SockaddrInet6{Port: port}
	copy(sa.Addr[:], ip.To16())
	return unix.AF_INET6, sa
}
