package action

import (
	"errors"
	"fmt"
	"iter"

	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
)

// ErrCell is returned for a family, component or element index outside the set
var ErrCell = errors.New("invalid diagram cell")

// DefaultMaxElements bounds the element count of a DiagramSet
const DefaultMaxElements = 100000

// Contribution is one load effect f(x) = Σ Coeffs[k]·(x - Translate)^k
// valid over [Start, End)
type Contribution struct {
	Start     float64
	End       float64
	Coeffs    []float64
	Translate float64
}

// Input routes a contribution to a cell
type Input struct {
	Cell Cell
	Contribution
}

type options struct {
	maxElements int
	function    []segfunc.Option
}

// Option configures a DiagramSet
type Option func(*options)

// WithMaxElements bounds the number of elements a DiagramSet accepts
func WithMaxElements(n int) Option {
	return func(o *options) { o.maxElements = n }
}

// WithFunctionOptions applies opts to every SegmentedFunction of the set
func WithFunctionOptions(opts ...segfunc.Option) Option {
	return func(o *options) { o.function = append(o.function, opts...) }
}

// DiagramSet holds one SegmentedFunction per (component, element): six
// internal-force components, three deflections and three rotations.
type DiagramSet struct {
	numElements int
	cells       [][][]*segfunc.Function // [family][component][element]
}

// NewDiagramSet allocates Empty functions for numElements elements
func NewDiagramSet(numElements int, opts ...Option) (*DiagramSet, error) {
	o := options{maxElements: DefaultMaxElements}
	for _, opt := range opts {
		opt(&o)
	}
	if numElements < 0 || (o.maxElements > 0 && numElements > o.maxElements) {
		return nil, fmt.Errorf("%w: diagram set for %d elements (limit %d)", segfunc.ErrAllocation, numElements, o.maxElements)
	}

	ds := &DiagramSet{
		numElements: numElements,
		cells:       make([][][]*segfunc.Function, len(Families)),
	}
	for _, fam := range Families {
		ds.cells[fam] = make([][]*segfunc.Function, fam.Size())
		for c := range ds.cells[fam] {
			fns := make([]*segfunc.Function, numElements)
			for e := range fns {
				fns[e] = segfunc.NewFunction(o.function...)
			}
			ds.cells[fam][c] = fns
		}
	}
	return ds, nil
}

// NumElements returns the element count
func (ds *DiagramSet) NumElements() int { return ds.numElements }

// Function returns the SegmentedFunction of a cell
func (ds *DiagramSet) Function(cell Cell) (*segfunc.Function, error) {
	if cell.Family < 0 || int(cell.Family) >= len(ds.cells) {
		return nil, fmt.Errorf("%w: %s", ErrCell, cell)
	}
	comps := ds.cells[cell.Family]
	if cell.Component < 0 || int(cell.Component) >= len(comps) {
		return nil, fmt.Errorf("%w: %s", ErrCell, cell)
	}
	if cell.Element < 0 || cell.Element >= ds.numElements {
		return nil, fmt.Errorf("%w: %s", ErrCell, cell)
	}
	return comps[cell.Component][cell.Element], nil
}

// Accumulate superposes c onto the cell's function
func (ds *DiagramSet) Accumulate(cell Cell, c Contribution) error {
	fn, err := ds.Function(cell)
	if err != nil {
		return err
	}
	if err := fn.Accumulate(c.Start, c.End, c.Coeffs, c.Translate); err != nil {
		return fmt.Errorf("%s: %w", cell, err)
	}
	return nil
}

// Evaluate returns the cell's value at x
func (ds *DiagramSet) Evaluate(cell Cell, x float64) (float64, error) {
	fn, err := ds.Function(cell)
	if err != nil {
		return 0, err
	}
	return fn.Evaluate(x)
}

// Dump returns the segment reports of a cell
func (ds *DiagramSet) Dump(cell Cell) (iter.Seq[segfunc.SegmentReport], error) {
	fn, err := ds.Function(cell)
	if err != nil {
		return nil, err
	}
	return fn.Dump(), nil
}

// Cells yields every cell in family, component, element order
func (ds *DiagramSet) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, fam := range Families {
			for c := 0; c < fam.Size(); c++ {
				for e := 0; e < ds.numElements; e++ {
					if !yield(Cell{Family: fam, Component: Component(c), Element: e}) {
						return
					}
				}
			}
		}
	}
}
