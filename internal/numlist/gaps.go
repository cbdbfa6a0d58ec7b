package numlist

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Gap is a run of integers absent between two neighbouring sorted entries.
type Gap struct {
	After   int   `json:"after"`
	Before  int   `json:"before"`
	Missing []int `json:"missing"`
}

// Sorted returns an ascending copy of nums.
func Sorted(nums []int) []int {
	out := slices.Clone(nums)
	slices.Sort(out)
	return out
}

// Missing yields every integer strictly between neighbouring entries of a
// sorted list, in ascending order. Nothing is buffered, so a gap of any
// width costs constant memory.
func Missing(sorted []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i+1 < len(sorted); i++ {
			for n := sorted[i] + 1; n < sorted[i+1]; n++ {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// CountMissing returns how many integers Missing would yield, saturating at
// math.MaxInt.
func CountMissing(sorted []int) int {
	total := 0
	for i := 0; i+1 < len(sorted); i++ {
		lo, hi := sorted[i], sorted[i+1]
		if hi <= lo || hi-1 == lo {
			continue
		}
		width := uint(hi) - uint(lo) - 1
		if width > uint(math.MaxInt-total) {
			return math.MaxInt
		}
		total += int(width)
	}
	return total
}

// Gaps groups the missing integers of a sorted list by neighbouring pair.
// It returns ErrTooManyMissing when more than limit integers are absent; a
// limit of 0 or less means no limit.
func Gaps(sorted []int, limit int) ([]Gap, error) {
	if count := CountMissing(sorted); limit > 0 && count > limit {
		return nil, fmt.Errorf("%w: %d absent, limit is %d", ErrTooManyMissing, count, limit)
	}

	var gaps []Gap

	for i := 0; i+1 < len(sorted); i++ {
		lo, hi := sorted[i], sorted[i+1]
		if hi <= lo || hi-1 == lo {
			continue
		}

		gaps = append(gaps, Gap{
			After:   lo,
			Before:  hi,
			Missing: slices.Collect(Missing(sorted[i : i+2])),
		})
	}

	return gaps, nil
}
