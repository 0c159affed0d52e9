//go:build !unix

package transport

import (
	"context"
	"net"
)

// listen falls back to the runtime's listener.  The backlog cannot be
// set here and the platform default is used instead.
func listen(ctx context.Context, ep Endpoint) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", ep.Address())
}
