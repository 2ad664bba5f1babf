package project

import (
	"fmt"
	"math"
	"os"

	"github.com/alexiusacademia/gobeamdiag/internal/eurocode"
	"github.com/alexiusacademia/gobeamdiag/internal/section"
	"gopkg.in/yaml.v3"
)

// File is the YAML project description. Lengths and positions are in m,
// forces in kN, section vertices in mm and material moduli in MPa.
type File struct {
	Name         string              `yaml:"name"`
	Materials    []eurocode.Material `yaml:"materials"`
	Sections     []section.Section   `yaml:"sections"`
	Elements     []ElementSpec       `yaml:"elements"`
	LoadCases    []LoadCaseSpec      `yaml:"loadcases"`
	Combinations []CombinationSpec   `yaml:"combinations,omitempty"`
}

// ElementSpec references a material and a section by name
type ElementSpec struct {
	Name     string  `yaml:"name"`
	Length   float64 `yaml:"length"`
	Material string  `yaml:"material"`
	Section  string  `yaml:"section"`
}

// LoadCaseSpec is one load case and its point loads
type LoadCaseSpec struct {
	Name     string     `yaml:"name"`
	Category string     `yaml:"category"`
	Loads    []LoadSpec `yaml:"loads"`
}

// LoadSpec is a point load on a named element, in local axes
type LoadSpec struct {
	Element  string  `yaml:"element"`
	Position float64 `yaml:"position"`
	Fx       float64 `yaml:"fx,omitempty"`
	Fy       float64 `yaml:"fy,omitempty"`
	Fz       float64 `yaml:"fz,omitempty"`
	Tx       float64 `yaml:"tx,omitempty"`
}

// CombinationSpec either names a combination kind to generate (uls,
// sls-char, sls-freq, sls-qp) or lists explicit factors per load case.
type CombinationSpec struct {
	Name    string             `yaml:"name"`
	Kind    string             `yaml:"kind,omitempty"`
	Factors map[string]float64 `yaml:"factors,omitempty"`
}

// ValidationError represents a project validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Load reads and validates a project file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a project from YAML
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes the project as YAML
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks names and cross references
func (f *File) Validate() error {
	materials := make(map[string]bool, len(f.Materials))
	for _, m := range f.Materials {
		if m.Name == "" || materials[m.Name] {
			return invalid("material name %q is empty or duplicated", m.Name)
		}
		if _, _, err := m.Moduli(); err != nil {
			return invalid("%v", err)
		}
		materials[m.Name] = true
	}

	sections := make(map[string]bool, len(f.Sections))
	for i := range f.Sections {
		s := &f.Sections[i]
		if s.Name == "" || sections[s.Name] {
			return invalid("section name %q is empty or duplicated", s.Name)
		}
		if err := s.Validate(); err != nil {
			return err
		}
		sections[s.Name] = true
	}

	if len(f.Elements) == 0 {
		return invalid("project must have at least one element")
	}
	elements := make(map[string]float64, len(f.Elements))
	for _, e := range f.Elements {
		if e.Name == "" {
			return invalid("element name must not be empty")
		}
		if _, dup := elements[e.Name]; dup {
			return invalid("element %s is duplicated", e.Name)
		}
		if math.IsNaN(e.Length) || math.IsInf(e.Length, 0) || e.Length <= 0 {
			return invalid("element %s: length must be positive and finite, got %g", e.Name, e.Length)
		}
		if !materials[e.Material] {
			return invalid("element %s: unknown material %q", e.Name, e.Material)
		}
		if !sections[e.Section] {
			return invalid("element %s: unknown section %q", e.Name, e.Section)
		}
		elements[e.Name] = e.Length
	}

	cases := make(map[string]bool, len(f.LoadCases))
	for _, lc := range f.LoadCases {
		if lc.Name == "" || cases[lc.Name] {
			return invalid("load case name %q is empty or duplicated", lc.Name)
		}
		if _, err := eurocode.ParseCategory(lc.Category); err != nil {
			return invalid("load case %s: %v", lc.Name, err)
		}
		for i, ld := range lc.Loads {
			length, ok := elements[ld.Element]
			if !ok {
				return invalid("load case %s, load %d: unknown element %q", lc.Name, i+1, ld.Element)
			}
			if math.IsNaN(ld.Position) || ld.Position < 0 || ld.Position > length {
				return invalid("load case %s, load %d: position %g outside element %s (length %g)", lc.Name, i+1, ld.Position, ld.Element, length)
			}
		}
		cases[lc.Name] = true
	}

	for _, c := range f.Combinations {
		switch {
		case c.Kind != "" && len(c.Factors) > 0:
			return invalid("combination %s: give either kind or factors, not both", c.Name)
		case c.Kind != "":
			if _, err := eurocode.ParseKind(c.Kind); err != nil {
				return invalid("combination %s: %v", c.Name, err)
			}
		case len(c.Factors) > 0:
			if c.Name == "" {
				return invalid("combination with explicit factors needs a name")
			}
			for name := range c.Factors {
				if !cases[name] {
					return invalid("combination %s: unknown load case %q", c.Name, name)
				}
			}
		default:
			return invalid("combination %s: needs a kind or factors", c.Name)
		}
	}
	return nil
}
