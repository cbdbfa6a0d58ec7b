package exprsearch

import (
	"math"
	"strconv"
)

// Tolerance is the largest absolute difference at which two values are
// treated as equal. It applies to target matching and to the zero test that
// guards division.
const Tolerance = 1e-6

// Operand is a value together with the expression text that produced it.
type Operand struct {
	Value float64 `json:"value"`
	Expr  string  `json:"expr"`
}

// Leaf returns the operand for a literal integer.
func Leaf(n int) Operand {
	return Operand{Value: float64(n), Expr: strconv.Itoa(n)}
}

// Leaves converts a list of integers into the initial operand set.
func Leaves(nums []int) []Operand {
	out := make([]Operand, len(nums))
	for i, n := range nums {
		out[i] = Leaf(n)
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// operator combines the pair (a, b) picked from the operand set. Swapped
// operators evaluate b op a.
type operator struct {
	symbol  string
	swap    bool
	divides bool
	apply   func(x, y float64) float64
}

// operators is the fixed try order for every pair.
var operators = [...]operator{
	{symbol: "+", apply: func(x, y float64) float64 { return x + y }},
	{symbol: "-", apply: func(x, y float64) float64 { return x - y }},
	{symbol: "-", swap: true, apply: func(x, y float64) float64 { return x - y }},
	{symbol: "*", apply: func(x, y float64) float64 { return x * y }},
	{symbol: "/", divides: true, apply: func(x, y float64) float64 { return x / y }},
	{symbol: "/", swap: true, divides: true, apply: func(x, y float64) float64 { return x / y }},
}

// combine returns false when the operator would divide by zero.
func (o operator) combine(a, b Operand) (Operand, bool) {
	left, right := a, b
	if o.swap {
		left, right = b, a
	}

	if o.divides && almostEqual(right.Value, 0) {
		return Operand{}, false
	}

	return Operand{
		Value: o.apply(left.Value, right.Value),
		Expr:  "(" + left.Expr + o.symbol + right.Expr + ")",
	}, true
}
