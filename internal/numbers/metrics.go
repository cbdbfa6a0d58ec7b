package numbers

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	opsCounter     metric.Int64Counter
	opsHistogram   metric.Float64Histogram
	errorCounter   metric.Int64Counter
	nodesHistogram metric.Int64Histogram
)

// searchOutcomes is also exposed on /metrics for scrapers that do not
// speak OTLP.
var searchOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "numtools",
		Name:      "expression_searches_total",
		Help:      "Expression searches by outcome.",
	},
	[]string{"outcome"},
)

// Search outcome label values.
const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeAborted  = "aborted"
)

// InitMetrics registers metric instruments for the numbers domain.
// Call this once at startup (after observability.SetupTelemetry); repeated
// calls are harmless.
func InitMetrics() error {
	meter := otel.Meter("numbers")

	var err error

	opsCounter, err = meter.Int64Counter("numbers.operations.total",
		metric.WithDescription("Total number of number operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("numbers.operation.duration",
		metric.WithDescription("Duration of number operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 1, 10, 100, 1000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("numbers.errors.total",
		metric.WithDescription("Total number of failed number operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	nodesHistogram, err = meter.Int64Histogram("numbers.expression.nodes",
		metric.WithDescription("Search nodes visited per expression search"),
		metric.WithUnit("{node}"),
		metric.WithExplicitBucketBoundaries(10, 100, 1e3, 1e4, 1e5, 1e6, 1e7),
	)
	if err != nil {
		return fmt.Errorf("creating nodes histogram: %w", err)
	}

	if err := prometheus.Register(searchOutcomes); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return fmt.Errorf("registering search outcomes: %w", err)
		}
	}

	return nil
}
