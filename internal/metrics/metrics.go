// Package metrics keeps running totals for an inspector process.
//
// Methods are safe for concurrent use so tests can read counters while
// the accept loop runs.  A nil *Collector is a valid no-op receiver.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks sessions, reads and errors.
type Collector struct {
	sessionsActive atomic.Int64
	sessionsTotal  atomic.Int64
	reads          atomic.Int64
	emptyReads     atomic.Int64
	bytesIn        atomic.Int64
	writeShutdowns atomic.Int64
	acceptRetries  atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Sessions ─────────────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// ActiveSessions returns the number of sessions in progress.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime accept count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// ── Reads ────────────────────────────────────────────────────────────

// ReadCompleted records one bounded read that returned n bytes.
func (c *Collector) ReadCompleted(n int) {
	if c == nil {
		return
	}
	c.reads.Add(1)
	c.bytesIn.Add(int64(n))
	if n == 0 {
		c.emptyReads.Add(1)
	}
}

// Reads returns the total number of bounded reads.
func (c *Collector) Reads() int64 {
	if c == nil {
		return 0
	}
	return c.reads.Load()
}

// EmptyReads returns how many reads produced an empty payload.
func (c *Collector) EmptyReads() int64 {
	if c == nil {
		return 0
	}
	return c.emptyReads.Load()
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// WriteShutdown records a completed write-half shutdown.
func (c *Collector) WriteShutdown() {
	if c == nil {
		return
	}
	c.writeShutdowns.Add(1)
}

// WriteShutdowns returns the number of write-half shutdowns.
func (c *Collector) WriteShutdowns() int64 {
	if c == nil {
		return 0
	}
	return c.writeShutdowns.Load()
}

// AcceptRetry records a temporary accept failure that was retried.
func (c *Collector) AcceptRetry() {
	if c == nil {
		return
	}
	c.acceptRetries.Add(1)
}

// AcceptRetries returns the number of retried accept failures.
func (c *Collector) AcceptRetries() int64 {
	if c == nil {
		return 0
	}
	return c.acceptRetries.Load()
}

// ── Errors ───────────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	SessionsActive   int64  `json:"sessions_active"`
	SessionsTotal    int64  `json:"sessions_total"`
	Reads            int64  `json:"reads"`
	EmptyReads       int64  `json:"empty_reads"`
	BytesIn          int64  `json:"bytes_in"`
	WriteShutdowns   int64  `json:"write_shutdowns"`
	AcceptRetries    int64  `json:"accept_retries"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive: c.sessionsActive.Load(),
		SessionsTotal:  c.sessionsTotal.Load(),
		Reads:          c.reads.Load(),
		EmptyReads:     c.emptyReads.Load(),
		BytesIn:        c.bytesIn.Load(),
		WriteShutdowns: c.writeShutdowns.Load(),
		AcceptRetries:  c.acceptRetries.Load(),
		ErrorsTotal:    c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	data, _ := json.MarshalIndent(c.Snapshot(), "", "  ")
	return string(data)
}
