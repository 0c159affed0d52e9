package core

import (
	"io"

	"tcpinspect/config"
	"tcpinspect/internal/inspector"
	"tcpinspect/internal/metrics"
	"tcpinspect/internal/transport"
	"tcpinspect/util"
)

// Build constructs the inspector described by cfg.  Console output goes
// to stdout (os.Stdout when nil); diagnostics go through logger.
func Build(cfg *config.Config, logger *util.Logger, stdout io.Writer) (Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &inspector.Inspector{
		Endpoint: transport.Endpoint{
			Host:    cfg.BindAddress,
			Port:    cfg.Port,
			Backlog: cfg.Backlog,
		},
		Reads:       cfg.ReadCount,
		ChunkSize:   cfg.ChunkSize,
		ReadTimeout: cfg.ReadTimeout,
		FailFast:    cfg.FailFast,
		Console:     inspector.NewConsole(stdout),
		Logger:      logger,
		Metrics:     metrics.New(),
	}, nil
}
