package beam

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testElement = Element{
	Name:   "B1",
	Length: 4,
	E:      30e6,
	G:      12.5e6,
	A:      0.15,
	Iy:     1.125e-3,
	Iz:     3.125e-3,
	J:      2.5e-3,
}

func apply(t *testing.T, el Element, loads ...PointLoad) *action.DiagramSet {
	t.Helper()
	ds, err := action.NewDiagramSet(1)
	require.NoError(t, err)
	for _, in := range Zero(0, el) {
		require.NoError(t, ds.Accumulate(in.Cell, in.Contribution))
	}
	for _, load := range loads {
		inputs, err := Effects(0, el, load)
		require.NoError(t, err)
		for _, in := range inputs {
			require.NoError(t, ds.Accumulate(in.Cell, in.Contribution))
		}
	}
	return ds
}

func eval(t *testing.T, ds *action.DiagramSet, fam action.Family, comp action.Component, x float64) float64 {
	t.Helper()
	y, err := ds.Evaluate(action.Cell{Family: fam, Component: comp}, x)
	require.NoError(t, err)
	return y
}

func TestMidspanPointLoad(t *testing.T) {
	const f = 10.0
	ds := apply(t, testElement, PointLoad{Position: 2, Fy: f})
	L, ei := testElement.Length, testElement.E*testElement.Iz

	assert.InDelta(t, f/2, eval(t, ds, action.Effort, action.Vy, 1), 1e-9)
	assert.InDelta(t, -f/2, eval(t, ds, action.Effort, action.Vy, 3), 1e-9)
	assert.InDelta(t, f*L/4, eval(t, ds, action.Effort, action.Mz, 2), 1e-9)
	assert.InDelta(t, 0, eval(t, ds, action.Effort, action.Mz, 0), 1e-9)
	assert.InDelta(t, 0, eval(t, ds, action.Effort, action.Mz, L), 1e-9)

	assert.InDelta(t, f*L*L*L/(48*ei), eval(t, ds, action.Deflection, action.Y, 2), 1e-12)
	assert.InDelta(t, 0, eval(t, ds, action.Deflection, action.Y, 0), 1e-12)
	assert.InDelta(t, 0, eval(t, ds, action.Deflection, action.Y, L), 1e-12)

	assert.InDelta(t, f*L*L/(16*ei), eval(t, ds, action.Rotation, action.Z, 0), 1e-12)
	assert.InDelta(t, 0, eval(t, ds, action.Rotation, action.Z, 2), 1e-12)
	assert.InDelta(t, -f*L*L/(16*ei), eval(t, ds, action.Rotation, action.Z, L), 1e-12)

	// the other plane stays at zero
	assert.Equal(t, 0.0, eval(t, ds, action.Effort, action.My, 2))
	assert.Equal(t, 0.0, eval(t, ds, action.Deflection, action.Z, 2))
}

func TestOffCentreLoadContinuity(t *testing.T) {
	el := testElement
	el.Length = 5
	const a, f = 1.0, -7.0
	ds := apply(t, el, PointLoad{Position: a, Fz: f})

	fn, err := ds.Function(action.Cell{Family: action.Deflection, Component: action.Z})
	require.NoError(t, err)
	segs := fn.Segments()
	require.Len(t, segs, 2)
	assert.InDelta(t, segs[0].Value(a), segs[1].Value(a), 1e-15)

	rot, err := ds.Function(action.Cell{Family: action.Rotation, Component: action.Y})
	require.NoError(t, err)
	rsegs := rot.Segments()
	require.Len(t, rsegs, 2)
	assert.InDelta(t, rsegs[0].Value(a), rsegs[1].Value(a), 1e-15)

	// M(a) = F·a·b / L
	assert.InDelta(t, f*a*4/5, eval(t, ds, action.Effort, action.My, a), 1e-12)
	// F·a·b·(L² - a² - b²) ... at the load: F a² b² / (3 E I L)
	assert.InDelta(t, f*a*a*16/(3*el.E*el.Iy*5), eval(t, ds, action.Deflection, action.Z, a), 1e-15)
}

func TestAxialAndTorsion(t *testing.T) {
	el := testElement
	ds := apply(t, el, PointLoad{Position: 3, Fx: 20, Tx: 2})

	assert.Equal(t, 20.0, eval(t, ds, action.Effort, action.N, 1))
	assert.Equal(t, 0.0, eval(t, ds, action.Effort, action.N, 3.5))
	assert.InDelta(t, 20*3/(el.E*el.A), eval(t, ds, action.Deflection, action.X, 3.5), 1e-15)
	assert.InDelta(t, 20*1.5/(el.E*el.A), eval(t, ds, action.Deflection, action.X, 1.5), 1e-15)

	assert.Equal(t, 2.0, eval(t, ds, action.Effort, action.Mx, 2))
	assert.InDelta(t, 2*3/(el.G*el.J), eval(t, ds, action.Rotation, action.X, 4), 1e-15)
}

func TestLoadAtSupport(t *testing.T) {
	ds := apply(t, testElement, PointLoad{Position: 0, Fy: 10}, PointLoad{Position: 4, Fy: 10})

	for _, x := range []float64{0, 1, 4} {
		assert.InDelta(t, 0, eval(t, ds, action.Effort, action.Mz, x), 1e-12)
		assert.InDelta(t, 0, eval(t, ds, action.Deflection, action.Y, x), 1e-12)
	}
}

func TestSuperposedLoads(t *testing.T) {
	one := apply(t, testElement, PointLoad{Position: 1, Fy: 3})
	two := apply(t, testElement, PointLoad{Position: 3, Fy: 5})
	both := apply(t, testElement, PointLoad{Position: 3, Fy: 5}, PointLoad{Position: 1, Fy: 3})

	for _, x := range []float64{0, 0.5, 1, 2, 3, 3.7, 4} {
		for _, comp := range []action.Component{action.Vy, action.Mz} {
			want := eval(t, one, action.Effort, comp, x) + eval(t, two, action.Effort, comp, x)
			assert.InDelta(t, want, eval(t, both, action.Effort, comp, x), 1e-9)
		}
		want := eval(t, one, action.Deflection, action.Y, x) + eval(t, two, action.Deflection, action.Y, x)
		assert.InDelta(t, want, eval(t, both, action.Deflection, action.Y, x), 1e-15)
	}
}

func TestEffectsValidation(t *testing.T) {
	_, err := Effects(0, testElement, PointLoad{Position: 4.5, Fy: 1})
	assert.Error(t, err)
	_, err = Effects(0, testElement, PointLoad{Position: -0.1, Fy: 1})
	assert.Error(t, err)

	bad := testElement
	bad.Length = 0
	_, err = Effects(0, bad, PointLoad{Fy: 1})
	assert.Error(t, err)

	_, err = Effects(0, testElement, PointLoad{Position: math.NaN(), Fy: 1})
	assert.Error(t, err)

	bad = testElement
	bad.Length = math.Inf(1)
	assert.Error(t, bad.Validate())

	bad = testElement
	bad.J = 0
	assert.Error(t, bad.Validate())

	inputs, err := Effects(0, testElement, PointLoad{Position: 1})
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestZeroCoversEveryCell(t *testing.T) {
	inputs := Zero(3, testElement)
	assert.Len(t, inputs, 12)
	for _, in := range inputs {
		assert.Equal(t, 3, in.Cell.Element)
		assert.Equal(t, 4.0, in.End)
	}
}
