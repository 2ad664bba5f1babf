package segfunc

import "math"

// Epsilon is the relative tolerance under which two coordinates are the same
// breakpoint.
const Epsilon = 1e-10

// Equal reports whether a and b are equal within the relative tolerance
// |a-b| / max(1, |a|, |b|) < Epsilon.
func Equal(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b)/scale < Epsilon
}

// greaterOrEqual is a >= b with b's neighbourhood counted as equal
func greaterOrEqual(a, b float64) bool {
	return a > b || Equal(a, b)
}
