// Meaningful Metrics
//
// Scores how time is spent by priority, goal alignment and follow-through,
// and benchmarks population segments against the same metrics.
package main

import (
	"context"
	"os"
	"time"

	"github.com/blaisecz/meaningful-metrics/internal/cli"
	"github.com/blaisecz/meaningful-metrics/internal/config"
	"github.com/blaisecz/meaningful-metrics/internal/service"
	"github.com/blaisecz/meaningful-metrics/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg := config.Load()

	logger := config.NewLogger(cfg, os.Stderr)
	ctx := logger.WithContext(context.Background())

	// Initialize tracing (no-op unless Langfuse is configured)
	shutdown, err := telemetry.InitTracer(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
		shutdown = func(context.Context) error { return nil }
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	app := cli.NewCLI(cli.Options{
		Config:    cfg,
		Service:   service.NewReportService(),
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	})

	if err := app.Execute(ctx, os.Args[1:]); err != nil {
		logger.Debug().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
