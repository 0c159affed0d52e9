package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// These reproduce the fixed listening parameters of the inspector.
// Flags and TCPINSPECT_* variables may override them, but a bare
// invocation always uses exactly these.

const (
	// DefaultBindAddress listens on all IPv4 interfaces.
	DefaultBindAddress = "0.0.0.0"

	// DefaultPort is the port microcontroller firmware is pointed at.
	DefaultPort = 3001

	// DefaultBacklog is the listen(2) queue depth.
	DefaultBacklog = 5

	// DefaultReadCount is the number of bounded reads per connection.
	DefaultReadCount = 4

	// DefaultChunkSize is the capacity of the receive buffer.
	DefaultChunkSize = 1024

	// MaxChunkSize caps --chunk-size.
	MaxChunkSize = 64 * 1024

	// DefaultReadTimeout of zero means reads block indefinitely.
	DefaultReadTimeout time.Duration = 0

	// DefaultVerbose prints warnings and errors only.
	DefaultVerbose = 1
)
