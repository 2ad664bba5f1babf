package action

import (
	"testing"

	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiagramSet(t *testing.T) {
	ds, err := NewDiagramSet(3)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumElements())

	count := 0
	for cell := range ds.Cells() {
		fn, err := ds.Function(cell)
		require.NoError(t, err)
		assert.True(t, fn.IsEmpty())
		count++
	}
	assert.Equal(t, (6+3+3)*3, count)

	_, err = NewDiagramSet(-1)
	assert.ErrorIs(t, err, segfunc.ErrAllocation)
	_, err = NewDiagramSet(11, WithMaxElements(10))
	assert.ErrorIs(t, err, segfunc.ErrAllocation)
}

func TestCellRouting(t *testing.T) {
	ds, err := NewDiagramSet(2)
	require.NoError(t, err)

	mz1 := Cell{Family: Effort, Component: Mz, Element: 1}
	require.NoError(t, ds.Accumulate(mz1, Contribution{Start: 0, End: 4, Coeffs: []float64{10}}))
	require.NoError(t, ds.Accumulate(mz1, Contribution{Start: 2, End: 6, Coeffs: []float64{5, 1}, Translate: 2}))

	y, err := ds.Evaluate(mz1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, y, 1e-12)

	// neighbouring cells are untouched
	for _, other := range []Cell{
		{Family: Effort, Component: Mz, Element: 0},
		{Family: Effort, Component: My, Element: 1},
		{Family: Rotation, Component: Z, Element: 1},
	} {
		fn, err := ds.Function(other)
		require.NoError(t, err)
		assert.True(t, fn.IsEmpty(), other.String())
	}

	seq, err := ds.Dump(mz1)
	require.NoError(t, err)
	n := 0
	for range seq {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestInvalidCells(t *testing.T) {
	ds, err := NewDiagramSet(1)
	require.NoError(t, err)

	for _, cell := range []Cell{
		{Family: Family(7), Component: 0, Element: 0},
		{Family: Deflection, Component: 3, Element: 0},
		{Family: Effort, Component: Component(-1), Element: 0},
		{Family: Effort, Component: N, Element: 1},
		{Family: Effort, Component: N, Element: -1},
	} {
		_, err := ds.Evaluate(cell, 0)
		assert.ErrorIs(t, err, ErrCell, cell.String())
	}
}

func TestCellNames(t *testing.T) {
	assert.Equal(t, "Mz[2]", Cell{Family: Effort, Component: Mz, Element: 2}.String())
	assert.Equal(t, "uy[0]", Cell{Family: Deflection, Component: Y}.String())
	assert.Equal(t, "rx[1]", Cell{Family: Rotation, Component: X, Element: 1}.String())

	fam, comp, err := ParseComponent("Vz")
	require.NoError(t, err)
	assert.Equal(t, Effort, fam)
	assert.Equal(t, Vz, comp)

	fam, comp, err = ParseComponent("rz")
	require.NoError(t, err)
	assert.Equal(t, Rotation, fam)
	assert.Equal(t, Z, comp)

	_, _, err = ParseComponent("Q")
	assert.Error(t, err)
}

func TestApplyAbortsOnError(t *testing.T) {
	a, err := New("G", "permanent", 1)
	require.NoError(t, err)

	cell := Cell{Family: Effort, Component: Vy, Element: 0}
	err = a.Apply([]Input{
		{Cell: cell, Contribution: Contribution{Start: 0, End: 2, Coeffs: []float64{1}}},
		{Cell: cell, Contribution: Contribution{Start: 3, End: 1, Coeffs: []float64{1}}},
		{Cell: cell, Contribution: Contribution{Start: 0, End: 2, Coeffs: []float64{1}}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, segfunc.ErrInvalidInterval)
	assert.True(t, a.Failed())

	_, err = a.Diagrams()
	assert.ErrorIs(t, err, ErrFailed)

	// further passes are refused
	assert.Error(t, a.Apply(nil))
}

func TestApplyAllocationFailure(t *testing.T) {
	a, err := New("Q", "imposed", 1, WithFunctionOptions(segfunc.WithMaxSegments(2)))
	require.NoError(t, err)

	cell := Cell{Family: Effort, Component: Mz, Element: 0}
	err = a.Apply([]Input{
		{Cell: cell, Contribution: Contribution{Start: 0, End: 4, Coeffs: []float64{10}}},
		{Cell: cell, Contribution: Contribution{Start: 2, End: 6, Coeffs: []float64{5, 1}, Translate: 2}},
	})
	assert.ErrorIs(t, err, segfunc.ErrAllocation)
	assert.True(t, segfunc.IsFatal(err))
	assert.True(t, a.Failed())
}

func TestCombine(t *testing.T) {
	cell := Cell{Family: Effort, Component: Mz, Element: 0}

	g, err := New("G", "permanent", 1)
	require.NoError(t, err)
	require.NoError(t, g.Apply([]Input{{Cell: cell, Contribution: Contribution{Start: 0, End: 4, Coeffs: []float64{10}}}}))

	q, err := New("Q", "imposed", 1)
	require.NoError(t, err)
	require.NoError(t, q.Apply([]Input{{Cell: cell, Contribution: Contribution{Start: 2, End: 4, Coeffs: []float64{0, 1}, Translate: 2}}}))

	uls, err := Combine("ULS", []Term{{Action: g, Factor: 1.35}, {Action: q, Factor: 1.5}, {Action: q, Factor: 0}})
	require.NoError(t, err)
	assert.Equal(t, "combination", uls.Category)

	ds, err := uls.Diagrams()
	require.NoError(t, err)
	y, err := ds.Evaluate(cell, 3)
	require.NoError(t, err)
	assert.InDelta(t, 13.5+1.5, y, 1e-12)

	// cells no term touches stay empty
	fn, err := ds.Function(Cell{Family: Deflection, Component: Z})
	require.NoError(t, err)
	assert.True(t, fn.IsEmpty())
}

func TestCombineRejectsMismatch(t *testing.T) {
	a, _ := New("A", "permanent", 1)
	b, _ := New("B", "permanent", 2)
	_, err := Combine("C", []Term{{Action: a, Factor: 1}, {Action: b, Factor: 1}})
	assert.Error(t, err)

	_, err = Combine("C", nil)
	assert.Error(t, err)

	_ = a.Apply([]Input{{Cell: Cell{Family: Effort, Element: 5}}})
	_, err = Combine("C", []Term{{Action: a, Factor: 1}})
	assert.ErrorIs(t, err, ErrCell)
}
