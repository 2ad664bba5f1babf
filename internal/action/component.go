package action

import "fmt"

// Family groups the response components of an element
type Family int

const (
	Effort Family = iota
	Deflection
	Rotation
)

// Component indexes a response within its family
type Component int

// Effort components
const (
	N  Component = iota // axial force
	Vy                  // shear along local y
	Vz                  // shear along local z
	Mx                  // torsion
	My                  // bending about local y
	Mz                  // bending about local z
)

// Deflection and rotation components, about or along local x, y, z
const (
	X Component = iota
	Y
	Z
)

var componentNames = map[Family][]string{
	Effort:     {"N", "Vy", "Vz", "Mx", "My", "Mz"},
	Deflection: {"ux", "uy", "uz"},
	Rotation:   {"rx", "ry", "rz"},
}

var familyNames = []string{"effort", "deflection", "rotation"}

// Size returns the number of components in the family
func (f Family) Size() int {
	return len(componentNames[f])
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("family(%d)", int(f))
	}
	return familyNames[f]
}

// Families lists every family in storage order
var Families = []Family{Effort, Deflection, Rotation}

// Cell addresses one SegmentedFunction of a DiagramSet
type Cell struct {
	Family    Family
	Component Component
	Element   int
}

// Name returns the component symbol, e.g. "Mz" or "uy"
func (c Cell) Name() string {
	names, ok := componentNames[c.Family]
	if !ok || c.Component < 0 || int(c.Component) >= len(names) {
		return fmt.Sprintf("%s(%d)", c.Family, int(c.Component))
	}
	return names[c.Component]
}

func (c Cell) String() string {
	return fmt.Sprintf("%s[%d]", c.Name(), c.Element)
}

// ParseComponent resolves a symbol such as "Mz" or "uy" to its family and component
func ParseComponent(symbol string) (Family, Component, error) {
	for _, fam := range Families {
		for i, name := range componentNames[fam] {
			if name == symbol {
				return fam, Component(i), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("unknown component %q", symbol)
}
