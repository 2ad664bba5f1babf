package segfunc

import "errors"

var (
	// ErrInvalidInterval is returned when a contribution ends before it starts
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrEmptyDomain is returned when a breakpoint is inserted before any
	// contribution has established the domain
	ErrEmptyDomain = errors.New("empty domain")

	// ErrOutOfDomain is returned when a function is evaluated outside its segments
	ErrOutOfDomain = errors.New("out of domain")

	// ErrAllocation is returned when the segment sequence cannot grow
	ErrAllocation = errors.New("allocation failure")

	// ErrInvariant is returned when a split or append would produce a
	// segment of non-positive width
	ErrInvariant = errors.New("invariant violation")

	// ErrDegree is returned when a contribution has more coefficients than
	// the function's degree allows
	ErrDegree = errors.New("polynomial degree too high")
)

// IsFatal reports whether err must abort the current post-processing pass.
// Every error aborts the pass; fatal ones additionally indicate a bug or a
// resource limit rather than a caller mistake.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAllocation) || errors.Is(err, ErrInvariant)
}
