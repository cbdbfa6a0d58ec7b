package exprsearch

import (
	"context"
	"fmt"
	"sync/atomic"
)

// checkInterval is how many nodes a searcher visits between context checks.
// Must be a power of two.
const checkInterval = 1024

// searcher runs the depth-first reduction for one operand set. It is not
// safe for concurrent use; the parallel path gives every branch its own.
type searcher struct {
	ctx    context.Context
	target float64
	budget int64
	hook   func(Operand)

	// stop reports whether a parallel sibling has made this branch moot.
	stop func() bool

	total *atomic.Int64
	seen  int64
	local int64
}

func (s *searcher) visit() error {
	s.local++

	if s.budget > 0 && s.seen+s.local > s.budget {
		return ErrBudgetExceeded
	}

	if s.local&(checkInterval-1) != 0 {
		return nil
	}

	s.flush()

	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("search aborted: %w", err)
	}
	if s.stop != nil && s.stop() {
		return errStopped
	}

	return nil
}

// flush publishes the locally counted nodes to the shared total.
func (s *searcher) flush() {
	s.seen = s.total.Add(s.local)
	s.local = 0
}

// solve reduces ops to a single operand, returning the first reduction
// whose value matches the target. ops is never modified.
func (s *searcher) solve(ops []Operand) (Operand, bool, error) {
	if err := s.visit(); err != nil {
		return Operand{}, false, err
	}

	n := len(ops)
	if n == 1 {
		if s.hook != nil {
			s.hook(ops[0])
		}
		return ops[0], almostEqual(ops[0].Value, s.target), nil
	}

	// The last slot of next holds the combined operand and is overwritten
	// for each operator. Children only read next.
	next := make([]Operand, n-1)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rest(next, ops, i, j)

			for _, op := range operators {
				combined, ok := op.combine(ops[i], ops[j])
				if !ok {
					continue
				}
				next[n-2] = combined

				res, found, err := s.solve(next)
				if err != nil || found {
					return res, found, err
				}
			}
		}
	}

	return Operand{}, false, nil
}

// rest copies every operand except positions i and j into dst, keeping
// their order.
func rest(dst, ops []Operand, i, j int) {
	k := 0
	for idx, op := range ops {
		if idx == i || idx == j {
			continue
		}
		dst[k] = op
		k++
	}
}

// branch is one top-level reduction: the operand set left after combining a
// single pair with a single operator. index follows enumeration order.
type branch struct {
	index int
	ops   []Operand
}

// expand lists the top-level branches of ops in the order solve visits them.
func expand(ops []Operand) []branch {
	n := len(ops)
	var branches []branch

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for _, op := range operators {
				combined, ok := op.combine(ops[i], ops[j])
				if !ok {
					continue
				}

				next := make([]Operand, n-1)
				rest(next, ops, i, j)
				next[n-2] = combined

				branches = append(branches, branch{index: len(branches), ops: next})
			}
		}
	}

	return branches
}
