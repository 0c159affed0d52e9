package util

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(3) // debug level
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Error("e")
	l.Warn("w")
	l.Info("i")
	l.Verbose("v")
	l.Debug("d")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"[ERR] e", "[WRN] w", "[INF] i", "[VRB] v", "[DBG] d"}, lines)
}

func TestLogger_QuietMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(0)
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Info("should not appear")
	l.Warn("should not appear")
	l.Verbose("should not appear")
	l.Debug("should not appear")
	l.Error("always appears")

	assert.Equal(t, "[ERR] always appears\n", buf.String())
}

func TestLogger_Timestamps(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)
	l.SetTimestamps(true)

	l.Info("test")

	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} \[INF\] test\n$`), buf.String())
}

func TestLogger_Enabled(t *testing.T) {
	l := NewLogger(2)
	assert.True(t, l.Enabled(LogVerbose), "verbose at level 2")
	assert.False(t, l.Enabled(LogDebug), "debug at level 2")
	assert.Equal(t, LogVerbose, l.Level())
}

func TestIsTerminal_NonTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f), "regular file reported as terminal")
	assert.False(t, IsTerminal(nil), "nil file reported as terminal")
}
