package polynomial

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinomial(t *testing.T) {
	assert.Equal(t, 1.0, Binomial(0, 0))
	assert.Equal(t, 3.0, Binomial(3, 1))
	assert.Equal(t, 3.0, Binomial(3, 2))
	assert.Equal(t, 6.0, Binomial(4, 2))
	assert.Equal(t, 0.0, Binomial(3, 4))
	assert.Equal(t, 0.0, Binomial(3, -1))
}

func TestShiftCubicClosedForm(t *testing.T) {
	c := []float64{1.5, -2, 0.75, 0.4}
	tr := 1.7

	got := Shift(c, tr)

	want := []float64{
		c[0] - tr*c[1] + tr*tr*c[2] - tr*tr*tr*c[3],
		c[1] - 2*tr*c[2] + 3*tr*tr*c[3],
		c[2] - 3*tr*c[3],
		c[3],
	}
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestShiftMatchesDirectEvaluation(t *testing.T) {
	for degree := 0; degree <= 5; degree++ {
		c := make([]float64, degree+1)
		for k := range c {
			c[k] = float64(k+1) * 0.5 * math.Pow(-1, float64(k))
		}
		for _, tr := range []float64{-3, 0, 0.25, 2, 10} {
			shifted := Shift(c, tr)
			for _, x := range []float64{-1, 0, 0.5, 3, 7} {
				direct := Horner(c, x-tr)
				assert.InDelta(t, direct, Horner(shifted, x), 1e-9*math.Max(1, math.Abs(direct)),
					"degree=%d translate=%v x=%v", degree, tr, x)
			}
		}
	}
}

func TestShiftDoesNotModifyInput(t *testing.T) {
	c := []float64{5, 1}
	_ = Shift(c, 2)
	assert.Equal(t, []float64{5, 1}, c)

	out := Shift(c, 0)
	out[0] = 99
	assert.Equal(t, 5.0, c[0])
}

func TestHorner(t *testing.T) {
	assert.Equal(t, 0.0, Horner(nil, 3))
	assert.Equal(t, 10.0, Horner([]float64{10}, 3))
	// 1 + 2x + 3x² at x=2
	assert.Equal(t, 17.0, Horner([]float64{1, 2, 3}, 2))
}

func TestDerivative(t *testing.T) {
	assert.Equal(t, []float64{2, 6, 12}, Derivative([]float64{1, 2, 3, 4}))
	assert.Equal(t, []float64{0}, Derivative([]float64{7}))
}

func TestScaleAddPad(t *testing.T) {
	dst := Pad([]float64{1, 2}, 4)
	assert.Equal(t, []float64{1, 2, 0, 0}, dst)

	AddInto(dst, Scale([]float64{1, 1, 1}, -2))
	assert.Equal(t, []float64{-1, 0, -2, 0}, dst)
}

func TestRealRoots(t *testing.T) {
	assert.Nil(t, RealRoots([]float64{3}))
	assert.Equal(t, []float64{-2}, RealRoots([]float64{4, 2}))
	assert.Nil(t, RealRoots([]float64{1, 0, 1}))

	roots := RealRoots([]float64{-6, 1, 1}) // (x+3)(x-2)
	sort.Float64s(roots)
	assert.InDeltaSlice(t, []float64{-3, 2}, roots, 1e-12)

	roots = RealRoots([]float64{-4, 0, 1})
	sort.Float64s(roots)
	assert.InDeltaSlice(t, []float64{-2, 2}, roots, 1e-12)
}
