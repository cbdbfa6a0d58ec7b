package observability

import (
	"context"
	"testing"

	"numtools/internal/config"
)

func TestSetupTelemetryDisabledIsNoop(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry = false

	shutdown, err := SetupTelemetry(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setup telemetry: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
