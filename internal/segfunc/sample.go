package segfunc

import (
	"fmt"

	"github.com/alexiusacademia/gobeamdiag/internal/polynomial"
)

// Point is an (x, value) pair
type Point struct {
	X float64
	Y float64
}

// Sample evaluates the function at n evenly spaced abscissae over its domain,
// both bounds included. n below 2 is raised to 2.
func (f *Function) Sample(n int) ([]Point, error) {
	lower, upper, ok := f.Domain()
	if !ok {
		return nil, fmt.Errorf("sample: %w", ErrEmptyDomain)
	}
	if n < 2 {
		n = 2
	}

	pts := make([]Point, n)
	step := (upper - lower) / float64(n-1)
	for i := range pts {
		x := lower + float64(i)*step
		if i == n-1 {
			x = upper
		}
		y, err := f.Evaluate(x)
		if err != nil {
			return nil, err
		}
		pts[i] = Point{X: x, Y: y}
	}
	return pts, nil
}

// Polyline returns perSegment+1 points per segment, each segment evaluated
// with its own polynomial up to and including its end. Jumps between
// segments therefore show up as two points sharing an abscissa.
func (f *Function) Polyline(perSegment int) []Point {
	if perSegment < 1 {
		perSegment = 1
	}
	pts := make([]Point, 0, len(f.segments)*(perSegment+1))
	for _, s := range f.segments {
		step := (s.End - s.Start) / float64(perSegment)
		for i := 0; i <= perSegment; i++ {
			x := s.Start + float64(i)*step
			if i == perSegment {
				x = s.End
			}
			pts = append(pts, Point{X: x, Y: s.Value(x)})
		}
	}
	return pts
}

const extremeSamples = 64

// Extremes returns the points of minimum and maximum value over the domain,
// segment end limits included. Interior stationary points are solved
// exactly up to cubic segments and sampled above that.
func (f *Function) Extremes() (lo, hi Point, err error) {
	if f.IsEmpty() {
		return lo, hi, fmt.Errorf("extremes: %w", ErrEmptyDomain)
	}

	first := true
	consider := func(s Segment, x float64) {
		p := Point{X: x, Y: s.Value(x)}
		if first || p.Y < lo.Y {
			lo = p
		}
		if first || p.Y > hi.Y {
			hi = p
		}
		first = false
	}

	for _, s := range f.segments {
		consider(s, s.Start)
		consider(s, s.End)

		d := polynomial.Derivative(s.Coeffs)
		if polynomial.Degree(d) <= 2 {
			for _, r := range polynomial.RealRoots(d) {
				if r > s.Start && r < s.End {
					consider(s, r)
				}
			}
			continue
		}
		step := (s.End - s.Start) / extremeSamples
		for i := 1; i < extremeSamples; i++ {
			consider(s, s.Start+float64(i)*step)
		}
	}
	return lo, hi, nil
}
