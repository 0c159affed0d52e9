package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv_Endpoint(t *testing.T) {
	t.Setenv("TCPINSPECT_BIND", "127.0.0.1")
	t.Setenv("TCPINSPECT_PORT", "8080")
	t.Setenv("TCPINSPECT_BACKLOG", "16")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, "127.0.0.1", cfg.BindAddress)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 16, cfg.Backlog)
}

func TestLoadFromEnv_Session(t *testing.T) {
	t.Setenv("TCPINSPECT_READS", "8")
	t.Setenv("TCPINSPECT_CHUNK_SIZE", "64")
	t.Setenv("TCPINSPECT_READ_TIMEOUT", "10")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 8, cfg.ReadCount)
	assert.Equal(t, 64, cfg.ChunkSize)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}

func TestLoadFromEnv_Booleans(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TCPINSPECT_FAIL_FAST", v)
			t.Setenv("TCPINSPECT_TIMESTAMPS", v)
			cfg := Default()
			LoadFromEnv(cfg)
			assert.True(t, cfg.FailFast)
			assert.True(t, cfg.Timestamps)
		})
	}
}

func TestLoadFromEnv_NoOverrideWhenEmpty(t *testing.T) {
	t.Setenv("TCPINSPECT_PORT", "")
	t.Setenv("TCPINSPECT_BIND", "")
	t.Setenv("TCPINSPECT_FAIL_FAST", "")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultBindAddress, cfg.BindAddress)
	assert.False(t, cfg.FailFast)
}

func TestLoadFromEnv_InvalidIntIgnored(t *testing.T) {
	t.Setenv("TCPINSPECT_PORT", "not-a-number")
	cfg := Default()
	LoadFromEnv(cfg)
	assert.Equal(t, DefaultPort, cfg.Port, "invalid input keeps the default")
}

func TestLoadFromEnv_Verbose(t *testing.T) {
	t.Setenv("TCPINSPECT_VERBOSE", "3")
	cfg := Default()
	LoadFromEnv(cfg)
	assert.Equal(t, 3, cfg.Verbose)
}
