package observability

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"numtools/internal/config"
)

// SetupTelemetry starts OTLP tracing, metrics and log export when
// cfg.Telemetry is set. Otherwise the global OTel providers stay no-ops and
// the returned shutdown does nothing.
func SetupTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if !cfg.Telemetry {
		Logger.Info("telemetry export disabled")
		return func(context.Context) error { return nil }, nil
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	steps := []struct {
		name string
		init func(context.Context, string) (func(context.Context) error, error)
	}{
		{"tracing", InitTracing},
		{"metrics", InitMetrics},
		{"logging", InitLogging},
	}

	for _, step := range steps {
		fn, err := step.init(ctx, cfg.ServiceName)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init %s: %w", step.name, err), shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	Logger.Info("telemetry export enabled", zap.String("service", cfg.ServiceName))

	return shutdown, nil
}
