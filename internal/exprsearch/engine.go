// Package exprsearch finds an arithmetic expression over a list of numbers
// that evaluates to a target value.
//
// The search repeatedly picks two operands, combines them with one of
// + - * / (in either order for - and /), and recurses on the smaller set
// until a single operand is left. Pairs are tried left to right and
// operators in a fixed order, so the first expression found is
// deterministic for a given input.
package exprsearch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("exprsearch")

// Result is a successful search outcome.
type Result struct {
	Expr  string  `json:"expression"`
	Value float64 `json:"value"`
	Nodes int64   `json:"nodes"`
}

// Engine runs expression searches. The zero configuration from New has no
// limits and searches on the calling goroutine.
type Engine struct {
	maxOperands int
	nodeBudget  int64
	workers     int
	hook        func(Operand)
	logger      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxOperands rejects operand sets larger than n. Zero means no limit.
func WithMaxOperands(n int) Option {
	return func(e *Engine) { e.maxOperands = n }
}

// WithNodeBudget aborts a search after it visits n nodes. Zero means no
// limit. With more than one worker the budget is enforced approximately.
func WithNodeBudget(n int64) Option {
	return func(e *Engine) { e.nodeBudget = n }
}

// WithWorkers spreads the top-level branches over n pooled goroutines.
// The expression returned is the same as with a single worker.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithCandidateHook calls fn for every fully reduced operand the search
// evaluates. With more than one worker fn is called concurrently.
func WithCandidateHook(fn func(Operand)) Option {
	return func(e *Engine) { e.hook = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Search looks for an expression over operands that equals target within
// Tolerance. Exhausting the search space is not an error: it returns
// found == false. Errors come only from limits and ctx.
func (e *Engine) Search(ctx context.Context, operands []Operand, target float64) (Result, bool, error) {
	ctx, span := tracer.Start(ctx, "exprsearch.search",
		trace.WithAttributes(
			attribute.Int("exprsearch.operands", len(operands)),
			attribute.Float64("exprsearch.target", target),
			attribute.Int("exprsearch.workers", e.workers),
		),
	)
	defer span.End()

	if err := e.validate(operands); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, false, err
	}

	e.logger.Debug("expression search started",
		zap.Int("operands", len(operands)),
		zap.Float64("target", target),
		zap.Int("workers", e.workers),
	)

	start := time.Now()
	var total atomic.Int64

	var (
		res   Operand
		found bool
		err   error
	)
	if e.workers > 1 && len(operands) > 2 {
		res, found, err = e.searchParallel(ctx, operands, target, &total)
	} else {
		s := e.newSearcher(ctx, target, &total)
		res, found, err = s.solve(operands)
		s.flush()
	}

	nodes := total.Load()
	span.SetAttributes(
		attribute.Int64("exprsearch.nodes", nodes),
		attribute.Bool("exprsearch.found", found),
	)

	e.logger.Debug("expression search finished",
		zap.Bool("found", found),
		zap.String("expression", res.Expr),
		zap.Int64("nodes", nodes),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{Nodes: nodes}, false, err
	}

	span.SetStatus(codes.Ok, "")

	if !found {
		return Result{Nodes: nodes}, false, nil
	}
	return Result{Expr: res.Expr, Value: res.Value, Nodes: nodes}, true, nil
}

func (e *Engine) validate(operands []Operand) error {
	if len(operands) == 0 {
		return ErrNoOperands
	}
	if e.maxOperands > 0 && len(operands) > e.maxOperands {
		return fmt.Errorf("%w: %d given, limit is %d", ErrTooManyOperands, len(operands), e.maxOperands)
	}
	return nil
}

func (e *Engine) newSearcher(ctx context.Context, target float64, total *atomic.Int64) *searcher {
	return &searcher{
		ctx:    ctx,
		target: target,
		budget: e.nodeBudget,
		hook:   e.hook,
		total:  total,
	}
}

// Search runs an unlimited sequential search and returns the first
// matching expression, if any.
func Search(operands []Operand, target float64) (string, bool) {
	res, found, err := New().Search(context.Background(), operands, target)
	if err != nil || !found {
		return "", false
	}
	return res.Expr, true
}
