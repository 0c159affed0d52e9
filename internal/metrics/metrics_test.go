package metrics

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Sessions(t *testing.T) {
	c := New()

	c.SessionOpened()
	assert.Equal(t, int64(1), c.ActiveSessions())
	c.SessionClosed()
	c.SessionOpened()
	c.SessionClosed()

	assert.Zero(t, c.ActiveSessions())
	assert.Equal(t, int64(2), c.TotalSessions())
}

func TestCollector_Reads(t *testing.T) {
	c := New()

	c.ReadCompleted(16)
	c.ReadCompleted(0)
	c.ReadCompleted(0)
	c.ReadCompleted(1024)

	assert.Equal(t, int64(4), c.Reads())
	assert.Equal(t, int64(2), c.EmptyReads())
	assert.Equal(t, int64(1040), c.TotalBytesIn())
}

func TestCollector_AcceptRetries(t *testing.T) {
	c := New()
	c.AcceptRetry()
	c.AcceptRetry()

	assert.Equal(t, int64(2), c.AcceptRetries())
	assert.Equal(t, int64(2), c.Snapshot().AcceptRetries)
}

func TestCollector_Errors(t *testing.T) {
	c := New()
	c.RecordError("read 10.0.0.5:4000: connection reset by peer")
	c.RecordError("second")

	assert.Equal(t, int64(2), c.ErrorCount())
	s := c.Snapshot()
	assert.Equal(t, "second", s.LastErrorMessage)
	assert.NotEmpty(t, s.LastError, "last error timestamp should be set")
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.SessionOpened()
	c.SessionClosed()
	c.ReadCompleted(5)
	c.WriteShutdown()
	c.AcceptRetry()
	c.RecordError("x")

	assert.Zero(t, c.TotalSessions())
	assert.Zero(t, c.Reads())
	assert.Zero(t, c.ErrorCount())
	assert.Zero(t, c.AcceptRetries())
	assert.Equal(t, Snapshot{}, c.Snapshot())
}

func TestCollector_JSON(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.ReadCompleted(3)
	c.WriteShutdown()
	c.AcceptRetry()

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(c.JSON()), &s))
	assert.Equal(t, int64(1), s.SessionsTotal)
	assert.Equal(t, int64(3), s.BytesIn)
	assert.Equal(t, int64(1), s.WriteShutdowns)
	assert.Equal(t, int64(1), s.AcceptRetries)
}

func TestCollector_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ReadCompleted(2)
			_ = c.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), c.Reads())
	assert.Equal(t, int64(100), c.TotalBytesIn())
}
