package segfunc

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/alexiusacademia/gobeamdiag/internal/polynomial"
)

// DefaultDegree is the polynomial degree used by the element response
// formulas (cubic deflection under point loads).
const DefaultDegree = 3

// Segment is a sub-interval [Start, End) of the domain carrying the
// coefficients of Σ Coeffs[k]·x^k, valid on that sub-interval only.
type Segment struct {
	Start  float64
	End    float64
	Coeffs []float64
}

// Value evaluates the segment polynomial at x, without a domain check
func (s Segment) Value(x float64) float64 {
	return polynomial.Horner(s.Coeffs, x)
}

func (s Segment) clone() Segment {
	return Segment{Start: s.Start, End: s.End, Coeffs: slices.Clone(s.Coeffs)}
}

// Function is a piecewise polynomial over an ordered, contiguous,
// non-overlapping sequence of segments.
//
// A Function starts Empty. The first Accumulate establishes its domain and
// it never returns to Empty afterwards. A Function is not safe for
// concurrent use.
type Function struct {
	degree      int
	maxSegments int
	segments    []Segment
}

// Option configures a Function
type Option func(*Function)

// WithDegree sets the maximum polynomial degree of the function
func WithDegree(d int) Option {
	return func(f *Function) {
		if d >= 0 {
			f.degree = d
		}
	}
}

// WithMaxSegments bounds the number of segments. Growing past the bound
// fails with ErrAllocation. Zero means unbounded.
func WithMaxSegments(n int) Option {
	return func(f *Function) {
		if n >= 0 {
			f.maxSegments = n
		}
	}
}

// NewFunction creates an Empty function
func NewFunction(opts ...Option) *Function {
	f := &Function{degree: DefaultDegree}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Degree returns the maximum polynomial degree
func (f *Function) Degree() int { return f.degree }

// IsEmpty reports whether no contribution has established a domain yet
func (f *Function) IsEmpty() bool { return len(f.segments) == 0 }

// Len returns the number of segments
func (f *Function) Len() int { return len(f.segments) }

// Domain returns the lower and upper bound. ok is false for an Empty function.
func (f *Function) Domain() (lower, upper float64, ok bool) {
	if f.IsEmpty() {
		return 0, 0, false
	}
	return f.segments[0].Start, f.segments[len(f.segments)-1].End, true
}

// Segments returns a deep copy of the segment sequence
func (f *Function) Segments() []Segment {
	out := make([]Segment, len(f.segments))
	for i, s := range f.segments {
		out[i] = s.clone()
	}
	return out
}

func (f *Function) zeros() []float64 {
	return make([]float64, f.degree+1)
}

// reserve fails when adding extra segments would exceed the configured bound
func (f *Function) reserve(extra int) error {
	if f.maxSegments > 0 && len(f.segments)+extra > f.maxSegments {
		return fmt.Errorf("%w: %d segments requested, limit is %d", ErrAllocation, len(f.segments)+extra, f.maxSegments)
	}
	return nil
}

// InsertBreakpoint ensures a segment boundary exists at cut without changing
// the function's value anywhere. A cut outside the current domain extends it
// with a zero segment.
func (f *Function) InsertBreakpoint(cut float64) error {
	if f.IsEmpty() {
		return fmt.Errorf("insert breakpoint at %g: %w", cut, ErrEmptyDomain)
	}

	lower := f.segments[0].Start
	if Equal(cut, lower) {
		return nil
	}

	if cut < lower {
		if err := f.reserve(1); err != nil {
			return err
		}
		f.segments = slices.Insert(f.segments, 0, Segment{Start: cut, End: lower, Coeffs: f.zeros()})
		return nil
	}

	for i := range f.segments {
		seg := f.segments[i]
		if Equal(cut, seg.End) {
			return nil
		}
		if seg.End > cut {
			if cut <= seg.Start {
				return fmt.Errorf("%w: split of [%g, %g) at %g", ErrInvariant, seg.Start, seg.End, cut)
			}
			if err := f.reserve(1); err != nil {
				return err
			}
			right := Segment{Start: cut, End: seg.End, Coeffs: slices.Clone(seg.Coeffs)}
			f.segments[i].End = cut
			f.segments = slices.Insert(f.segments, i+1, right)
			return nil
		}
	}

	upper := f.segments[len(f.segments)-1].End
	if !(cut > upper) {
		return fmt.Errorf("%w: append [%g, %g)", ErrInvariant, upper, cut)
	}
	if err := f.reserve(1); err != nil {
		return err
	}
	f.segments = append(f.segments, Segment{Start: upper, End: cut, Coeffs: f.zeros()})
	return nil
}

// Accumulate superposes the contribution f(x) = Σ coeffs[k]·(x - translate)^k
// over [start, end) onto the function. Coefficients shorter than the
// function's degree are zero-padded.
func (f *Function) Accumulate(start, end float64, coeffs []float64, translate float64) error {
	if Equal(start, end) {
		return nil
	}
	// negated so NaN bounds are rejected too
	if !(start < end) {
		return fmt.Errorf("%w: [%g, %g)", ErrInvalidInterval, start, end)
	}
	if len(coeffs) > f.degree+1 {
		return fmt.Errorf("%w: %d coefficients, degree is %d", ErrDegree, len(coeffs), f.degree)
	}

	shifted := polynomial.Pad(polynomial.Shift(coeffs, translate), f.degree+1)

	if f.IsEmpty() {
		if err := f.reserve(1); err != nil {
			return err
		}
		f.segments = append(f.segments, Segment{Start: start, End: end, Coeffs: shifted})
		return nil
	}

	if err := f.InsertBreakpoint(start); err != nil {
		return err
	}
	if err := f.InsertBreakpoint(end); err != nil {
		return err
	}

	for i := range f.segments {
		seg := &f.segments[i]
		if Equal(seg.Start, end) {
			break
		}
		if greaterOrEqual(seg.Start, start) {
			polynomial.AddInto(seg.Coeffs, shifted)
		}
	}
	return nil
}

// AddScaled superposes factor·other onto f, segment by segment
func (f *Function) AddScaled(other *Function, factor float64) error {
	for _, seg := range other.Segments() {
		if err := f.Accumulate(seg.Start, seg.End, polynomial.Scale(seg.Coeffs, factor), 0); err != nil {
			return err
		}
	}
	return nil
}

// locate returns the index of the segment containing x. Segments are
// half-open except the last one, which includes its end.
func (f *Function) locate(x float64) (int, error) {
	lower, upper, ok := f.Domain()
	if !ok || !(x >= lower && x <= upper) {
		return 0, fmt.Errorf("evaluate at %g: %w", x, ErrOutOfDomain)
	}
	i := sort.Search(len(f.segments), func(i int) bool { return f.segments[i].End > x })
	if i == len(f.segments) {
		i--
	}
	return i, nil
}

// Evaluate returns the function value at x
func (f *Function) Evaluate(x float64) (float64, error) {
	i, err := f.locate(x)
	if err != nil {
		return 0, err
	}
	return f.segments[i].Value(x), nil
}

// SegmentReport describes one segment for reports and rendering
type SegmentReport struct {
	Start        float64
	End          float64
	Coeffs       []float64
	ValueAtStart float64
	ValueAtEnd   float64
}

// Dump yields one report per segment, left to right. The sequence reads the
// function's current state each time it is ranged over.
func (f *Function) Dump() iter.Seq[SegmentReport] {
	return func(yield func(SegmentReport) bool) {
		for _, s := range f.segments {
			r := SegmentReport{
				Start:        s.Start,
				End:          s.End,
				Coeffs:       slices.Clone(s.Coeffs),
				ValueAtStart: s.Value(s.Start),
				ValueAtEnd:   s.Value(s.End),
			}
			if !yield(r) {
				return
			}
		}
	}
}
