package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is prepended to every supported variable name.
const EnvPrefix = "TCPINSPECT_"

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty,
// parseable values override the existing value.  Call it BEFORE flag
// parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "BIND"); v != "" {
		cfg.BindAddress = v
	}
	if v, ok := envInt("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := envInt("BACKLOG"); ok {
		cfg.Backlog = v
	}
	if v, ok := envInt("READS"); ok {
		cfg.ReadCount = v
	}
	if v, ok := envInt("CHUNK_SIZE"); ok {
		cfg.ChunkSize = v
	}
	if v, ok := envInt("READ_TIMEOUT"); ok {
		cfg.ReadTimeout = time.Duration(v) * time.Second
	}
	if envBool("FAIL_FAST") {
		cfg.FailFast = true
	}
	if v, ok := envInt("VERBOSE"); ok {
		cfg.Verbose = v
	}
	if envBool("TIMESTAMPS") {
		cfg.Timestamps = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) (int, bool) {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// envBool accepts "1", "true", "yes" (case-insensitive).
func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(EnvPrefix + key))
	return v == "1" || v == "true" || v == "yes"
}
