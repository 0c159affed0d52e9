//go:build unix

package errors

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isResourceExhausted reports descriptor or buffer exhaustion, which
// clears up once earlier sessions release their sockets.
func isResourceExhausted(err error) bool {
	return errors.Is(err, unix.EMFILE) ||
		errors.Is(err, unix.ENFILE) ||
		errors.Is(err, unix.ENOBUFS) ||
		errors.Is(err, unix.ENOMEM)
}
