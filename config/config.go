// Package config defines the runtime configuration for tcpinspect.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	inerrors "tcpinspect/internal/errors"
)

// Config holds every tuneable of the inspector.
type Config struct {
	// ── Listening endpoint ───────────────────────────────────────────
	BindAddress string
	Port        int
	Backlog     int

	// ── Session ──────────────────────────────────────────────────────
	ReadCount   int           // bounded reads per connection
	ChunkSize   int           // receive buffer capacity
	ReadTimeout time.Duration // 0 = block forever
	FailFast    bool          // read errors stop the server

	// ── Output ───────────────────────────────────────────────────────
	Verbose    int
	Timestamps bool
	DryRun     bool
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		BindAddress: DefaultBindAddress,
		Port:        DefaultPort,
		Backlog:     DefaultBacklog,
		ReadCount:   DefaultReadCount,
		ChunkSize:   DefaultChunkSize,
		ReadTimeout: DefaultReadTimeout,
		Verbose:     DefaultVerbose,
	}
}

// Address returns the bind address in host:port form.
func (c *Config) Address() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// String renders the effective settings for --dry-run and debug logs.
func (c *Config) String() string {
	timeout := "none"
	if c.ReadTimeout > 0 {
		timeout = c.ReadTimeout.String()
	}
	return fmt.Sprintf(
		"bind=%s backlog=%d reads=%d chunk=%d read-timeout=%s fail-fast=%t",
		c.Address(), c.Backlog, c.ReadCount, c.ChunkSize, timeout, c.FailFast)
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		return &inerrors.ConfigError{
			Field:   "bind",
			Message: "bind address is required",
			Hint:    "use 0.0.0.0 to listen on all interfaces",
		}
	}
	if net.ParseIP(c.BindAddress) == nil {
		return &inerrors.ConfigError{
			Field:   "bind",
			Value:   c.BindAddress,
			Message: "not a numeric IP address",
			Hint:    "hostnames are not resolved; pass an address such as 0.0.0.0 or 127.0.0.1",
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &inerrors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "port out of range 1-65535",
			Hint:    fmt.Sprintf("the firmware default is %d", DefaultPort),
		}
	}
	if c.Backlog < 1 {
		return &inerrors.ConfigError{
			Field:   "backlog",
			Value:   c.Backlog,
			Message: "backlog must be at least 1",
		}
	}
	if c.ReadCount < 1 {
		return &inerrors.ConfigError{
			Field:   "reads",
			Value:   c.ReadCount,
			Message: "at least one read per connection is required",
		}
	}
	if c.ChunkSize < 1 || c.ChunkSize > MaxChunkSize {
		return &inerrors.ConfigError{
			Field:   "chunk-size",
			Value:   c.ChunkSize,
			Message: fmt.Sprintf("chunk size out of range 1-%d", MaxChunkSize),
		}
	}
	if c.ReadTimeout < 0 {
		return &inerrors.ConfigError{
			Field:   "read-timeout",
			Value:   c.ReadTimeout,
			Message: "timeout cannot be negative",
			Hint:    "use 0 to wait forever",
		}
	}
	return nil
}
