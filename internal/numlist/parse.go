package numlist

import (
	"strconv"
	"strings"
)

// Parse scans s for decimal integers separated by commas. Whitespace may
// surround a number but never split one: "1, 2" yields [1 2] while "3 106"
// is a *ParseError. Empty fields are skipped, so "1,,2" yields [1 2]. Any
// character other than a digit, comma or whitespace is a *ParseError.
func Parse(s string) ([]int, error) {
	var (
		nums    []int
		pending strings.Builder
		start   int
		// closed is set when whitespace ends a number; only a comma may
		// follow before the next digit.
		closed bool
	)

	emit := func() error {
		if pending.Len() == 0 {
			return nil
		}
		n, err := strconv.Atoi(pending.String())
		if err != nil {
			return &ParseError{Input: s, Offset: start, Err: err}
		}
		nums = append(nums, n)
		pending.Reset()
		return nil
	}

	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			if closed {
				return nil, &ParseError{Input: s, Offset: i, Char: c, Err: ErrMissingComma}
			}
			if pending.Len() == 0 {
				start = i
			}
			pending.WriteRune(c)
		case c == ',':
			if err := emit(); err != nil {
				return nil, err
			}
			closed = false
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if pending.Len() > 0 {
				closed = true
			}
			if err := emit(); err != nil {
				return nil, err
			}
		default:
			return nil, &ParseError{Input: s, Offset: i, Char: c}
		}
	}

	if err := emit(); err != nil {
		return nil, err
	}

	if len(nums) == 0 {
		return nil, ErrNoNumbers
	}

	return nums, nil
}

// Join renders nums as comma-separated decimal text. Parse(Join(nums))
// returns nums for any non-empty list of non-negative integers.
func Join(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
