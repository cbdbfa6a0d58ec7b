package numbers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"time"

	"numtools/internal/config"
	"numtools/internal/exprsearch"
	"numtools/internal/handlers"
	"numtools/internal/numlist"
	"numtools/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the numbers domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("numbers")

// maxBodyBytes caps request bodies; inputs are short digit lists.
const maxBodyBytes = 1 << 20

// Handler serves the /numbers endpoints.
type Handler struct {
	search config.Search
	gaps   config.Gaps
}

// NewHandler returns a Handler whose expression searches are bounded by
// search and whose gap reports are bounded by gaps.
func NewHandler(search config.Search, gaps config.Gaps) *Handler {
	return &Handler{search: search, gaps: gaps}
}

// ---------------------------------------------------------------------------
// Gaps
// ---------------------------------------------------------------------------

// Gaps handles POST /numbers/gaps
func (h *Handler) Gaps(w http.ResponseWriter, r *http.Request) {
	const opName = "gaps"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "numbers.gaps",
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req GapsRequest
	if err := decode(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()

	nums, err := numlist.Parse(req.Input)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	sorted := numlist.Sorted(nums)

	gaps, err := numlist.Gaps(sorted, h.gaps.MaxMissing)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}
	missing := slices.Collect(numlist.Missing(sorted))

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.SetAttributes(
		attribute.Int("numbers.count", len(nums)),
		attribute.Int("numbers.missing", len(missing)),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("gap search completed",
		zap.Int("count", len(nums)),
		zap.Int("gaps", len(gaps)),
		zap.Int("missing", len(missing)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, GapsResponse{
		Numbers: nums,
		Sorted:  sorted,
		Missing: nonNil(missing),
		Gaps:    gaps,
	})
}

// ---------------------------------------------------------------------------
// Expression search
// ---------------------------------------------------------------------------

// Expression handles POST /numbers/expression
func (h *Handler) Expression(w http.ResponseWriter, r *http.Request) {
	const opName = "expression"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "numbers.expression",
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req ExpressionRequest
	if err := decode(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if math.IsNaN(req.Target) || math.IsInf(req.Target, 0) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid target", fmt.Errorf("target=%g", req.Target), http.StatusBadRequest, w)
		return
	}

	nums, err := numlist.Parse(req.Input)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Int("numbers.count", len(nums)),
		attribute.Float64("numbers.target", req.Target),
	)

	if h.search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.search.Timeout)
		defer cancel()
	}

	engine := exprsearch.New(
		exprsearch.WithMaxOperands(h.search.MaxOperands),
		exprsearch.WithNodeBudget(h.search.NodeBudget),
		exprsearch.WithWorkers(h.search.Workers),
		exprsearch.WithLogger(logger),
	)

	start := time.Now()
	res, found, err := engine.Search(ctx, exprsearch.Leaves(nums), req.Target)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status, msg := searchErrorStatus(err)
		if status == http.StatusServiceUnavailable {
			searchOutcomes.WithLabelValues(outcomeAborted).Inc()
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
		return
	}

	outcome := outcomeNotFound
	if found {
		outcome = outcomeFound
	}
	searchOutcomes.WithLabelValues(outcome).Inc()

	attrs := metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.Bool("found", found),
	)
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	nodesHistogram.Record(ctx, res.Nodes, attrs)

	span.AddEvent("search.complete", trace.WithAttributes(
		attribute.Bool("found", found),
		attribute.String("expression", res.Expr),
		attribute.Int64("nodes", res.Nodes),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression search completed",
		zap.Ints("numbers", nums),
		zap.Float64("target", req.Target),
		zap.Bool("found", found),
		zap.String("expression", res.Expr),
		zap.Int64("nodes", res.Nodes),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, ExpressionResponse{
		Numbers:    nums,
		Target:     req.Target,
		Found:      found,
		Expression: res.Expr,
		Value:      res.Value,
		Nodes:      res.Nodes,
	})
}

// searchErrorStatus maps an engine error to an HTTP status and message.
func searchErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, exprsearch.ErrTooManyOperands):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, exprsearch.ErrBudgetExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "search limit reached"
	default:
		return http.StatusInternalServerError, "search failed"
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
