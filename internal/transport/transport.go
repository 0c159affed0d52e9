// Package transport owns the listening side of the inspector: creating
// the passive socket with the exact options the firmware tests expect
// (address reuse, a fixed backlog) and handing back a net.Listener.
package transport

import (
	"context"
	"net"

	inerrors "tcpinspect/internal/errors"
	"tcpinspect/util"
)

// Endpoint describes the listening socket.  It is created once at
// startup and never mutated.
type Endpoint struct {
	Host    string // numeric IP, "0.0.0.0" for all interfaces
	Port    int    // 0 picks an ephemeral port
	Backlog int    // listen(2) queue depth
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return util.FormatAddr(e.Host, e.Port)
}

// Listen binds and listens on ep with SO_REUSEADDR enabled.  Accepted
// connections are *net.TCPConn.  Any failure is returned as a
// *errors.NetworkError with Op "listen"; callers treat it as fatal.
func Listen(ctx context.Context, ep Endpoint) (net.Listener, error) {
	if err := ctx.Err(); err != nil {
		return nil, inerrors.Wrap("listen", ep.Address(), err)
	}
	ln, err := listen(ctx, ep)
	if err != nil {
		return nil, &inerrors.NetworkError{Op: "listen", Addr: ep.Address(), Err: err}
	}
	return ln, nil
}
