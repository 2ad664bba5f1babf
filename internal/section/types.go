package section

import "fmt"

// Section is a solid cross-section defined by a polygon outline.
// Vertices are in mm in the section plane: X runs along the element's local
// z axis, Y along its local y axis.
type Section struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Vertices should be counter-clockwise; clockwise outlines are accepted
	// and give the same properties. The polygon must be simple (no holes).
	Vertices []Point `yaml:"vertices"`

	// Torsion constant override (mm⁴). Zero means use the approximation.
	J float64 `yaml:"j,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `yaml:"x"` // mm
	Y float64 `yaml:"y"` // mm
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // mm
	Height float64 // mm
	Area   float64 // mm²

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Second moments about centroidal axes
	Iz float64 // mm⁴, ∫y² dA, bending under local y loads
	Iy float64 // mm⁴, ∫x² dA, bending under local z loads
	J  float64 // mm⁴, torsion constant

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Rectangle returns a b × h section with its bottom-left corner at the origin
func Rectangle(name string, b, h float64) *Section {
	return &Section{
		Name: name,
		Vertices: []Point{
			{X: 0, Y: 0},
			{X: b, Y: 0},
			{X: b, Y: h},
			{X: 0, Y: h},
		},
	}
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{msg: fmt.Sprintf("section %s must have at least 3 vertices", s.Name)}
	}
	if area, _, _ := s.calculateAreaAndCentroid(); area <= 0 {
		return &ValidationError{msg: fmt.Sprintf("section %s has zero area", s.Name)}
	}
	if s.J < 0 {
		return &ValidationError{msg: fmt.Sprintf("section %s: torsion constant must not be negative", s.Name)}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
