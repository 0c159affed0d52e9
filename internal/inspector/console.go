package inspector

import (
	"io"
	"os"
	"strconv"
	"sync"
)

// Console writes the operator-facing trace.  Every message is emitted
// with a single Write call so a line is never interleaved with
// diagnostics written elsewhere.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to w, or to os.Stdout when w is
// nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Waiting announces that the listener is bound.
func (c *Console) Waiting(port int) {
	c.line("server waiting for client connection on port " + strconv.Itoa(port))
}

// Connection announces an accepted peer.
func (c *Console) Connection(peer string) {
	c.line("connection from " + peer)
}

// Received prints one payload verbatim.  No escaping is applied and an
// empty payload still produces a line.
func (c *Console) Received(payload []byte) {
	const prefix = "received data: "
	buf := make([]byte, 0, len(prefix)+len(payload)+1)
	buf = append(buf, prefix...)
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	c.write(buf)
}

func (c *Console) line(s string) {
	c.write([]byte(s + "\n"))
}

func (c *Console) write(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.Write(b) //nolint:errcheck
}
