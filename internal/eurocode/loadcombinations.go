package eurocode

import (
	"fmt"
	"sort"
	"strings"
)

// Category classifies a load case for combination purposes
// Based on EN 1990 Annex A1, Table A1.1 (buildings)
type Category string

const (
	Permanent   Category = "permanent"
	ImposedA    Category = "imposed-a" // domestic, residential
	ImposedB    Category = "imposed-b" // office
	ImposedC    Category = "imposed-c" // congregation
	ImposedD    Category = "imposed-d" // shopping
	ImposedE    Category = "imposed-e" // storage
	Roof        Category = "roof"      // category H
	Snow        Category = "snow"      // sites at altitude H <= 1000 m
	Wind        Category = "wind"
	Temperature Category = "temperature"
)

// Psi holds the combination (ψ0), frequent (ψ1) and quasi-permanent (ψ2) factors
type Psi struct {
	Psi0 float64
	Psi1 float64
	Psi2 float64
}

// EN 1990 Table A1.1
var psiFactors = map[Category]Psi{
	ImposedA:    {0.7, 0.5, 0.3},
	ImposedB:    {0.7, 0.5, 0.3},
	ImposedC:    {0.7, 0.7, 0.6},
	ImposedD:    {0.7, 0.7, 0.6},
	ImposedE:    {1.0, 0.9, 0.8},
	Roof:        {0, 0, 0},
	Snow:        {0.5, 0.2, 0},
	Wind:        {0.6, 0.2, 0},
	Temperature: {0.6, 0.5, 0},
}

// Partial factors, EN 1990 Table A1.2(B)
const (
	GammaG = 1.35 // permanent, unfavourable
	GammaQ = 1.5  // variable, unfavourable
)

// ParseCategory validates a category name. "imposed" alone means category A.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "imposed" {
		return ImposedA, nil
	}
	if c == Permanent {
		return c, nil
	}
	if _, ok := psiFactors[c]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown load category %q", s)
}

// Factors returns the ψ factors of a variable category
func (c Category) Factors() (Psi, bool) {
	psi, ok := psiFactors[c]
	return psi, ok
}

// IsVariable reports whether the category is a variable action
func (c Category) IsVariable() bool {
	_, ok := psiFactors[c]
	return ok
}

// Kind selects a combination rule
type Kind string

const (
	ULS               Kind = "uls"      // EN 1990 (6.10)
	SLSCharacteristic Kind = "sls-char" // (6.14b)
	SLSFrequent       Kind = "sls-freq" // (6.15b)
	SLSQuasiPermanent Kind = "sls-qp"   // (6.16b)
)

// Kinds lists every combination rule
var Kinds = []Kind{ULS, SLSCharacteristic, SLSFrequent, SLSQuasiPermanent}

// ParseKind validates a combination kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown combination kind %q", s)
}

// LoadCase is the part of a load case a combination needs
type LoadCase struct {
	Name     string
	Category Category
}

// LoadCombination is one set of factors applied to load cases
type LoadCombination struct {
	ID          string
	Description string
	Factors     map[string]float64 // load case name -> factor
}

// Generate builds the combinations of a kind, one per choice of leading
// variable action. Without variable actions a single combination of the
// permanent actions is returned.
func Generate(kind Kind, cases []LoadCase) ([]LoadCombination, error) {
	var permanent, variable []LoadCase
	for _, lc := range cases {
		switch {
		case lc.Category == Permanent:
			permanent = append(permanent, lc)
		case lc.Category.IsVariable():
			variable = append(variable, lc)
		default:
			return nil, fmt.Errorf("load case %s: unknown category %q", lc.Name, lc.Category)
		}
	}

	gammaG, gammaQ := 1.0, 1.0
	if kind == ULS {
		gammaG, gammaQ = GammaG, GammaQ
	}

	leadingFactor := func(psi Psi) float64 {
		if kind == SLSFrequent {
			return psi.Psi1
		}
		return gammaQ
	}
	accompanyingFactor := func(psi Psi) float64 {
		if kind == SLSFrequent {
			return psi.Psi2
		}
		return gammaQ * psi.Psi0
	}

	base := func() map[string]float64 {
		m := make(map[string]float64, len(cases))
		for _, lc := range permanent {
			m[lc.Name] = gammaG
		}
		return m
	}

	switch kind {
	case ULS, SLSCharacteristic, SLSFrequent:
	case SLSQuasiPermanent:
		// no leading action: every variable action at ψ2
		m := base()
		for _, lc := range variable {
			psi, _ := lc.Category.Factors()
			m[lc.Name] = psi.Psi2
		}
		return []LoadCombination{newCombination(kind, 1, m)}, nil
	default:
		return nil, fmt.Errorf("unknown combination kind %q", kind)
	}

	if len(variable) == 0 {
		return []LoadCombination{newCombination(kind, 1, base())}, nil
	}

	combos := make([]LoadCombination, 0, len(variable))
	for i, lead := range variable {
		m := base()
		for _, lc := range variable {
			psi, _ := lc.Category.Factors()
			if lc.Name == lead.Name {
				m[lc.Name] = leadingFactor(psi)
			} else {
				m[lc.Name] = accompanyingFactor(psi)
			}
		}
		combos = append(combos, newCombination(kind, i+1, m))
	}
	return combos, nil
}

func newCombination(kind Kind, n int, factors map[string]float64) LoadCombination {
	return LoadCombination{
		ID:          fmt.Sprintf("%s-%d", strings.ToUpper(string(kind)), n),
		Description: Describe(factors),
		Factors:     factors,
	}
}

// Describe formats factors as "1.35G + 1.5Q", sorted by load case name.
// Zero factors are left out.
func Describe(factors map[string]float64) string {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	terms := make([]string, 0, len(names))
	for _, name := range names {
		if factors[name] == 0 {
			continue
		}
		terms = append(terms, fmt.Sprintf("%.3g%s", factors[name], name))
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// Governing returns the index of the value with the largest magnitude, or -1
// for an empty slice
func Governing(values []float64) int {
	best := -1
	var bestAbs float64
	for i, v := range values {
		a := v
		if a < 0 {
			a = -a
		}
		if best < 0 || a > bestAbs {
			best, bestAbs = i, a
		}
	}
	return best
}
