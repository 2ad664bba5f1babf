package eurocode

import (
	"fmt"
	"math"
	"strings"
)

// Material constants

const (
	// Steel, EN 1993-1-1 Section 3.2.6
	SteelE  = 210000.0 // MPa
	SteelNu = 0.3

	// Concrete, EN 1992-1-1 Section 3.1.3
	ConcreteNu = 0.2
	FcmOffset  = 8.0 // fcm = fck + 8 MPa
)

// MaterialKind identifies how stiffness is derived
type MaterialKind string

const (
	Concrete MaterialKind = "concrete"
	Steel    MaterialKind = "steel"
	Custom   MaterialKind = "custom" // E and G given explicitly
)

// Material carries the data needed to derive elastic moduli
type Material struct {
	Name string       `yaml:"name"`
	Kind MaterialKind `yaml:"kind"`
	Fck  float64      `yaml:"fck,omitempty"` // MPa, concrete only
	E    float64      `yaml:"e,omitempty"`   // MPa, custom or override
	G    float64      `yaml:"g,omitempty"`   // MPa, custom or override
}

// Ecm returns the secant modulus of elasticity of concrete
// EN 1992-1-1 Table 3.1: Ecm = 22 (fcm/10)^0.3 GPa
func Ecm(fck float64) float64 {
	fcm := fck + FcmOffset
	return 22000 * math.Pow(fcm/10, 0.3)
}

// ShearModulus returns G = E / (2(1+ν))
func ShearModulus(e, nu float64) float64 {
	return e / (2 * (1 + nu))
}

// Moduli returns Young's and shear moduli in MPa. Explicit E and G take
// precedence over the derived values.
func (m Material) Moduli() (e, g float64, err error) {
	switch MaterialKind(strings.ToLower(string(m.Kind))) {
	case Concrete:
		if m.Fck <= 0 && m.E <= 0 {
			return 0, 0, fmt.Errorf("material %s: concrete needs fck > 0", m.Name)
		}
		e = Ecm(m.Fck)
		if m.E > 0 {
			e = m.E
		}
		g = ShearModulus(e, ConcreteNu)
	case Steel:
		e = SteelE
		if m.E > 0 {
			e = m.E
		}
		g = ShearModulus(e, SteelNu)
	case Custom:
		e = m.E
		g = m.G
	default:
		return 0, 0, fmt.Errorf("material %s: unknown kind %q", m.Name, m.Kind)
	}

	if m.G > 0 {
		g = m.G
	}
	if e <= 0 || g <= 0 {
		return 0, 0, fmt.Errorf("material %s: moduli must be positive (E=%.1f, G=%.1f)", m.Name, e, g)
	}
	return e, g, nil
}
