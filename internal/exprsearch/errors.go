package exprsearch

import "errors"

var (
	// ErrNoOperands indicates Search was called with an empty operand set.
	ErrNoOperands = errors.New("no operands to search")

	// ErrTooManyOperands indicates the operand set exceeds the engine's
	// configured maximum.
	ErrTooManyOperands = errors.New("too many operands")

	// ErrBudgetExceeded indicates the search visited more nodes than the
	// configured budget allows.
	ErrBudgetExceeded = errors.New("search node budget exceeded")

	// errStopped ends a parallel branch once an earlier branch has a solution.
	errStopped = errors.New("branch stopped")
)
