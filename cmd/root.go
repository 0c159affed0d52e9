// Package cmd wires up the CLI flags and starts the inspector.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"tcpinspect/config"
	"tcpinspect/internal/core"
	"tcpinspect/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X tcpinspect/cmd.version=1.1.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the inspector until ctx is cancelled.
// With no arguments the server starts on the default endpoint.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("tcpinspect", flag.ContinueOnError)

	// ── endpoint ─────────────────────────────────────────────────
	fs.StringVarP(&cfg.BindAddress, "bind", "b", cfg.BindAddress, "Bind address (numeric IP)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Listen port")
	fs.IntVar(&cfg.Backlog, "backlog", cfg.Backlog, "Listen backlog")

	// ── session ──────────────────────────────────────────────────
	fs.IntVarP(&cfg.ReadCount, "reads", "n", cfg.ReadCount, "Bounded reads per connection")
	fs.IntVarP(&cfg.ChunkSize, "chunk-size", "s", cfg.ChunkSize, "Bytes requested per read")
	timeoutSec := int(cfg.ReadTimeout / time.Second)
	fs.IntVarP(&timeoutSec, "read-timeout", "w", timeoutSec, "Per-read timeout in seconds (0 = wait forever)")
	fs.BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "Stop the server on the first read error")

	// ── output ───────────────────────────────────────────────────
	var verbosity int
	var quiet bool
	fs.CountVarP(&verbosity, "verbose", "v", "Increase diagnostic verbosity (repeatable)")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Only print errors to stderr")
	fs.BoolVar(&cfg.Timestamps, "timestamps", cfg.Timestamps, "Prefix diagnostics with timestamps")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate configuration and exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}
	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("tcpinspect %s\n", version)
		return nil
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s (use --help for usage)", strings.Join(rest, " "))
	}

	cfg.ReadTimeout = time.Duration(timeoutSec) * time.Second
	switch {
	case quiet:
		cfg.Verbose = int(util.LogQuiet)
	case verbosity > 0:
		cfg.Verbose = int(util.LogNormal) + verbosity
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DryRun {
		fmt.Println(cfg.String())
		return nil
	}

	// ── build & run ──────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	if cfg.Timestamps {
		logger.SetTimestamps(true)
	}
	logger.Debug("config: %s", cfg)

	mode, err := core.Build(cfg, logger, os.Stdout)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tcpinspect – TCP payload inspector v%s

Accepts one client at a time, prints its first chunks verbatim, then
shuts down the write side and waits for the next client.

Usage:
  tcpinspect [options]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  %[1]sBIND, %[1]sPORT, %[1]sBACKLOG, %[1]sREADS, %[1]sCHUNK_SIZE,
  %[1]sREAD_TIMEOUT, %[1]sFAIL_FAST, %[1]sVERBOSE, %[1]sTIMESTAMPS

Examples:
  tcpinspect                                  Listen on 0.0.0.0:3001
  tcpinspect -p 8080 -vv                      Custom port, debug output
  tcpinspect -w 5                             Give up on silent clients after 5s
`, config.EnvPrefix)
}
