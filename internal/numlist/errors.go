package numlist

import (
	"errors"
	"fmt"
)

// ErrNoNumbers is returned when the input holds no digits at all.
var ErrNoNumbers = errors.New("no numbers in input")

// ErrMissingComma is wrapped by a ParseError when whitespace splits digits
// that are not separated by a comma.
var ErrMissingComma = errors.New("numbers must be separated by commas")

// ErrTooManyMissing is returned by Gaps when the sorted list has more
// absent integers than the caller allows.
var ErrTooManyMissing = errors.New("too many missing numbers")

// ParseError reports a character or number that cannot be part of a
// comma-separated integer list.
type ParseError struct {
	Input  string
	Offset int
	Char   rune
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %q at offset %d: %v", e.Input, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse %q at offset %d: unexpected character %q", e.Input, e.Offset, e.Char)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
