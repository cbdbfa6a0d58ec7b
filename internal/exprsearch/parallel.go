package exprsearch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

type branchResult struct {
	res   Operand
	found bool
	err   error
}

// searchParallel runs every top-level branch on a worker pool and keeps the
// lowest-indexed success, which is the one a sequential search would find.
// Branches after the current best are skipped or stopped.
func (e *Engine) searchParallel(ctx context.Context, operands []Operand, target float64, total *atomic.Int64) (Operand, bool, error) {
	// The root node itself.
	total.Add(1)

	branches := expand(operands)
	results := make([]branchResult, len(branches))

	var best atomic.Int64
	best.Store(math.MaxInt64)

	pool, err := ants.NewPool(e.workers)
	if err != nil {
		return Operand{}, false, fmt.Errorf("create search pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, b := range branches {
		idx := int64(b.index)

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			if idx > best.Load() {
				return
			}

			s := e.newSearcher(ctx, target, total)
			s.stop = func() bool { return best.Load() < idx }

			res, found, err := s.solve(b.ops)
			s.flush()
			results[b.index] = branchResult{res: res, found: found, err: err}

			if found {
				for {
					cur := best.Load()
					if idx >= cur || best.CompareAndSwap(cur, idx) {
						break
					}
				}
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return Operand{}, false, fmt.Errorf("submit search branch: %w", err)
		}
	}
	wg.Wait()

	for _, r := range results {
		if r.found {
			return r.res, true, nil
		}
		if r.err != nil && !errors.Is(r.err, errStopped) {
			return Operand{}, false, r.err
		}
	}

	return Operand{}, false, nil
}
