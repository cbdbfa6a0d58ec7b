package main

import (
	"context"

	"numtools/internal/config"
	"numtools/internal/numbers"
	"numtools/internal/observability"
)

// initTelemetry starts the telemetry providers and then the domain metric
// instruments, which bind to whichever meter provider is installed. Add new
// domain InitMetrics calls here as the project grows.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	shutdown, err := observability.SetupTelemetry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := numbers.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
