package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
)

// Element is a straight, simply-supported element: pinned at node i (x = 0,
// axial and torsional rotation restrained) and on a roller at node j (x = L).
// Units are kN and m.
type Element struct {
	Name   string
	Length float64 // m

	E float64 // kN/m²
	G float64 // kN/m²

	A  float64 // m²
	Iy float64 // m⁴, bending under local z loads
	Iz float64 // m⁴, bending under local y loads
	J  float64 // m⁴
}

// Validate checks the element geometry and stiffness
func (e Element) Validate() error {
	if !(e.Length > 0) || math.IsInf(e.Length, 1) {
		return fmt.Errorf("element %s: length must be positive and finite, got %g", e.Name, e.Length)
	}
	if e.E <= 0 || e.G <= 0 {
		return fmt.Errorf("element %s: moduli must be positive (E=%g, G=%g)", e.Name, e.E, e.G)
	}
	if e.A <= 0 || e.Iy <= 0 || e.Iz <= 0 || e.J <= 0 {
		return fmt.Errorf("element %s: section constants must be positive (A=%g, Iy=%g, Iz=%g, J=%g)", e.Name, e.A, e.Iy, e.Iz, e.J)
	}
	return nil
}

// PointLoad is a concentrated load in local axes at Position from node i
type PointLoad struct {
	Position float64 // m
	Fx       float64 // kN, axial
	Fy       float64 // kN
	Fz       float64 // kN
	Tx       float64 // kN·m, torque
}

// Effects returns the contributions of one point load to the diagrams of the
// element at index. Forces and displacements are positive in the sense of
// the load component that causes them; rotations are the slopes du/dx of
// the matching deflection (Euler-Bernoulli bending).
func Effects(index int, el Element, load PointLoad) ([]action.Input, error) {
	if err := el.Validate(); err != nil {
		return nil, err
	}
	if !(load.Position >= 0 && load.Position <= el.Length) {
		return nil, fmt.Errorf("element %s: load position %g outside [0, %g]", el.Name, load.Position, el.Length)
	}

	var out []action.Input
	add := func(fam action.Family, comp action.Component, start, end float64, coeffs []float64, translate float64) {
		out = append(out, action.Input{
			Cell:         action.Cell{Family: fam, Component: comp, Element: index},
			Contribution: action.Contribution{Start: start, End: end, Coeffs: coeffs, Translate: translate},
		})
	}

	L, a := el.Length, load.Position

	if load.Fx != 0 {
		ea := el.E * el.A
		add(action.Effort, action.N, 0, a, []float64{load.Fx}, 0)
		add(action.Deflection, action.X, 0, a, []float64{0, load.Fx / ea}, 0)
		add(action.Deflection, action.X, a, L, []float64{load.Fx * a / ea}, 0)
	}

	if load.Tx != 0 {
		gj := el.G * el.J
		add(action.Effort, action.Mx, 0, a, []float64{load.Tx}, 0)
		add(action.Rotation, action.X, 0, a, []float64{0, load.Tx / gj}, 0)
		add(action.Rotation, action.X, a, L, []float64{load.Tx * a / gj}, 0)
	}

	if load.Fy != 0 {
		for _, in := range bending(L, a, load.Fy, el.E*el.Iz) {
			add(in.family, in.comp(action.Vy, action.Mz, action.Y, action.Z), in.start, in.end, in.coeffs, in.translate)
		}
	}

	if load.Fz != 0 {
		for _, in := range bending(L, a, load.Fz, el.E*el.Iy) {
			add(in.family, in.comp(action.Vz, action.My, action.Z, action.Y), in.start, in.end, in.coeffs, in.translate)
		}
	}

	return out, nil
}

type response int

const (
	shear response = iota
	moment
	deflection
	rotation
)

type bendingTerm struct {
	family    action.Family
	kind      response
	start     float64
	end       float64
	coeffs    []float64
	translate float64
}

// comp maps the plane-independent response to the component of a plane
func (b bendingTerm) comp(v, m, u, r action.Component) action.Component {
	switch b.kind {
	case shear:
		return v
	case moment:
		return m
	case deflection:
		return u
	}
	return r
}

// bending gives the shear, moment, deflection and rotation of a simply
// supported span L under a force f at a.
func bending(L, a, f, ei float64) []bendingTerm {
	b := L - a
	ra, rb := f*b/L, f*a/L
	kb := f * b / (6 * L * ei)
	ka := f * a / (6 * L * ei)

	return []bendingTerm{
		{action.Effort, shear, 0, a, []float64{ra}, 0},
		{action.Effort, shear, a, L, []float64{-rb}, 0},

		{action.Effort, moment, 0, a, []float64{0, ra}, 0},
		// M(a) - rb·(x - a)
		{action.Effort, moment, a, L, []float64{ra * a, -rb}, a},

		{action.Deflection, deflection, 0, a, []float64{0, kb * (L*L - b*b), 0, -kb}, 0},
		{action.Deflection, deflection, a, L, []float64{-ka * L * a * a, ka * (2*L*L + a*a), -3 * ka * L, ka}, 0},

		{action.Rotation, rotation, 0, a, []float64{kb * (L*L - b*b), 0, -3 * kb}, 0},
		{action.Rotation, rotation, a, L, []float64{ka * (2*L*L + a*a), -6 * ka * L, 3 * ka}, 0},
	}
}

// Zero returns zero contributions over [0, L] for every cell of the element,
// so that an unloaded element still has a defined domain.
func Zero(index int, el Element) []action.Input {
	var out []action.Input
	for _, fam := range action.Families {
		for c := 0; c < fam.Size(); c++ {
			out = append(out, action.Input{
				Cell:         action.Cell{Family: fam, Component: action.Component(c), Element: index},
				Contribution: action.Contribution{Start: 0, End: el.Length, Coeffs: []float64{0}},
			})
		}
	}
	return out
}
