package numbers

import "numtools/internal/numlist"

// GapsRequest is the JSON body for POST /numbers/gaps.
type GapsRequest struct {
	Input string `json:"input"` // e.g. "3106,3102,3104,3105,3107"
}

// GapsResponse is the JSON response for POST /numbers/gaps.
type GapsResponse struct {
	Numbers []int         `json:"numbers"` // in input order
	Sorted  []int         `json:"sorted"`
	Missing []int         `json:"missing"`
	Gaps    []numlist.Gap `json:"gaps"`
}

// ExpressionRequest is the JSON body for POST /numbers/expression.
type ExpressionRequest struct {
	Input  string  `json:"input"`
	Target float64 `json:"target"`
}

// ExpressionResponse is the JSON response for POST /numbers/expression.
// Expression is only set when Found is true; Value is always present and is
// 0 when nothing was found.
type ExpressionResponse struct {
	Numbers    []int   `json:"numbers"`
	Target     float64 `json:"target"`
	Found      bool    `json:"found"`
	Expression string  `json:"expression,omitempty"`
	Value      float64 `json:"value"`
	Nodes      int64   `json:"nodes"`
}
