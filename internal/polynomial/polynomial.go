package polynomial

import "math"

// Binomial returns the binomial coefficient C(n, k)
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return c
}

// Shift re-expresses a polynomial given relative to a local origin into
// coefficients of x directly.
//
// Input coefficients c satisfy f(x) = Σ c[j]·(x - translate)^j. The result c'
// satisfies f(x) = Σ c'[k]·x^k, with
//
//	c'[k] = Σ_{j=k}^{D} c[j]·C(j,k)·(-translate)^(j-k)
//
// The input slice is never modified.
func Shift(coeffs []float64, translate float64) []float64 {
	out := make([]float64, len(coeffs))
	if translate == 0 {
		copy(out, coeffs)
		return out
	}

	for k := range coeffs {
		var sum float64
		for j := k; j < len(coeffs); j++ {
			if coeffs[j] == 0 {
				continue
			}
			sum += coeffs[j] * Binomial(j, k) * math.Pow(-translate, float64(j-k))
		}
		out[k] = sum
	}
	return out
}

// Horner evaluates Σ coeffs[k]·x^k
func Horner(coeffs []float64, x float64) float64 {
	var y float64
	for k := len(coeffs) - 1; k >= 0; k-- {
		y = y*x + coeffs[k]
	}
	return y
}

// Derivative returns the coefficients of the first derivative.
// The result has one coefficient less than the input (at least one).
func Derivative(coeffs []float64) []float64 {
	if len(coeffs) <= 1 {
		return []float64{0}
	}
	out := make([]float64, len(coeffs)-1)
	for k := 1; k < len(coeffs); k++ {
		out[k-1] = float64(k) * coeffs[k]
	}
	return out
}

// Scale returns factor·coeffs
func Scale(coeffs []float64, factor float64) []float64 {
	out := make([]float64, len(coeffs))
	for k, c := range coeffs {
		out[k] = c * factor
	}
	return out
}

// AddInto adds src element-wise into dst. src must not be longer than dst.
func AddInto(dst, src []float64) {
	for k, c := range src {
		dst[k] += c
	}
}

// Pad returns coeffs zero-extended to n coefficients. Pad never truncates;
// callers check the length first.
func Pad(coeffs []float64, n int) []float64 {
	out := make([]float64, max(n, len(coeffs)))
	copy(out, coeffs)
	return out
}

// Degree returns the index of the highest non-zero coefficient, or -1 for
// the zero polynomial.
func Degree(coeffs []float64) int {
	for k := len(coeffs) - 1; k >= 0; k-- {
		if coeffs[k] != 0 {
			return k
		}
	}
	return -1
}

// RealRoots returns the real roots of a polynomial of degree at most 2.
// Higher degrees return nil; callers fall back to sampling.
func RealRoots(coeffs []float64) []float64 {
	switch Degree(coeffs) {
	case 1:
		return []float64{-coeffs[0] / coeffs[1]}
	case 2:
		a, b, c := coeffs[2], coeffs[1], coeffs[0]
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		if disc == 0 {
			return []float64{-b / (2 * a)}
		}
		// numerically stable form
		q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
		return []float64{q / a, c / q}
	}
	return nil
}
