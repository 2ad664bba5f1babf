package project

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/alexiusacademia/gobeamdiag/internal/beam"
	"github.com/alexiusacademia/gobeamdiag/internal/eurocode"
	"github.com/alexiusacademia/gobeamdiag/internal/section"
	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"github.com/sgostarter/i/l"
)

// Unit conversions from project units to kN and m
const (
	mpaToKNm2 = 1e3
	mm2ToM2   = 1e-6
	mm4ToM4   = 1e-12
)

// Combination is a combined action with a readable factor list
type Combination struct {
	Action      *action.Action
	Description string
}

// Model holds the diagrams of every load case and combination of a project
type Model struct {
	Name         string
	Elements     []beam.Element
	LoadCases    []*action.Action
	Combinations []Combination
}

// ElementIndex returns the index of a named element
func (m *Model) ElementIndex(name string) (int, bool) {
	for i, e := range m.Elements {
		if e.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Action returns a load case or combination by name
func (m *Model) Action(name string) (*action.Action, bool) {
	for _, a := range m.Actions() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Actions lists load cases followed by combinations
func (m *Model) Actions() []*action.Action {
	out := make([]*action.Action, 0, len(m.LoadCases)+len(m.Combinations))
	out = append(out, m.LoadCases...)
	for _, c := range m.Combinations {
		out = append(out, c.Action)
	}
	return out
}

// Governing returns the combination with the largest absolute extreme of a
// cell, together with that extreme.
func (m *Model) Governing(cell action.Cell) (*Combination, segfunc.Point, error) {
	var candidates []*Combination
	var points []segfunc.Point
	var values []float64

	for i := range m.Combinations {
		c := &m.Combinations[i]
		ds, err := c.Action.Diagrams()
		if err != nil {
			continue
		}
		fn, err := ds.Function(cell)
		if err != nil {
			return nil, segfunc.Point{}, err
		}
		lo, hi, err := fn.Extremes()
		if err != nil {
			continue
		}
		p := hi
		if -lo.Y > hi.Y {
			p = lo
		}
		candidates = append(candidates, c)
		points = append(points, p)
		values = append(values, p.Y)
	}

	idx := eurocode.Governing(values)
	if idx < 0 {
		return nil, segfunc.Point{}, fmt.Errorf("no usable combination for %s", cell)
	}
	return candidates[idx], points[idx], nil
}

// Builder runs the post-processing passes of a project
type Builder struct {
	logger l.Wrapper
	opts   []action.Option
}

// NewBuilder creates a builder. A nil logger discards output.
func NewBuilder(logger l.Wrapper, opts ...action.Option) *Builder {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Builder{
		logger: logger.WithFields(l.StringField(l.ClsKey, "projectBuilder")),
		opts:   opts,
	}
}

// Build resolves elements, runs one pass per load case and superposes the
// combinations. Failed passes are kept in the model, marked failed, and
// reported in the returned error; combinations depending on them are skipped.
func (b *Builder) Build(f *File) (*Model, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	elements, err := resolveElements(f)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(elements))
	for i, e := range elements {
		index[e.Name] = i
	}

	model := &Model{Name: f.Name, Elements: elements}
	var failures []error

	for _, lc := range f.LoadCases {
		logger := b.logger.WithFields(l.StringField("loadcase", lc.Name))

		category, _ := eurocode.ParseCategory(lc.Category)
		act, err := action.New(lc.Name, string(category), len(elements), b.opts...)
		if err != nil {
			logger.WithFields(l.ErrorField(err)).Error("allocate diagrams failed")
			return nil, err
		}

		inputs, err := loadCaseInputs(lc, elements, index)
		if err != nil {
			act.Fail(err)
		} else {
			err = act.Apply(inputs)
		}
		if err != nil {
			logger.WithFields(l.ErrorField(err)).Error("post-processing pass aborted")
			failures = append(failures, err)
		} else {
			logger.WithFields(l.IntField("inputs", len(inputs))).Debug("post-processing pass done")
		}
		model.LoadCases = append(model.LoadCases, act)
	}

	for _, spec := range f.Combinations {
		combos, err := b.combinations(f, spec)
		if err != nil {
			return nil, err
		}
		for _, c := range combos {
			logger := b.logger.WithFields(l.StringField("combination", c.ID))

			terms, err := combinationTerms(model, c.Factors)
			if err != nil {
				logger.WithFields(l.ErrorField(err)).Error("combination skipped")
				failures = append(failures, err)
				continue
			}

			name := c.ID
			if spec.Name != "" && spec.Kind != "" {
				name = spec.Name + "/" + c.ID
			}
			act, err := action.Combine(name, terms, b.opts...)
			if err != nil {
				logger.WithFields(l.ErrorField(err)).Error("combination failed")
				failures = append(failures, err)
				if act == nil {
					continue
				}
			}
			model.Combinations = append(model.Combinations, Combination{Action: act, Description: c.Description})
		}
	}

	return model, errors.Join(failures...)
}

func (b *Builder) combinations(f *File, spec CombinationSpec) ([]eurocode.LoadCombination, error) {
	if spec.Kind == "" {
		return []eurocode.LoadCombination{{
			ID:          spec.Name,
			Description: eurocode.Describe(spec.Factors),
			Factors:     spec.Factors,
		}}, nil
	}

	kind, err := eurocode.ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	cases := make([]eurocode.LoadCase, 0, len(f.LoadCases))
	for _, lc := range f.LoadCases {
		category, _ := eurocode.ParseCategory(lc.Category)
		cases = append(cases, eurocode.LoadCase{Name: lc.Name, Category: category})
	}
	return eurocode.Generate(kind, cases)
}

func combinationTerms(model *Model, factors map[string]float64) ([]action.Term, error) {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	terms := make([]action.Term, 0, len(names))
	for _, name := range names {
		var act *action.Action
		for _, lc := range model.LoadCases {
			if lc.Name == name {
				act = lc
			}
		}
		if act == nil {
			return nil, fmt.Errorf("unknown load case %q", name)
		}
		if act.Failed() {
			return nil, fmt.Errorf("load case %s: %w", name, action.ErrFailed)
		}
		terms = append(terms, action.Term{Action: act, Factor: factors[name]})
	}
	return terms, nil
}

func resolveElements(f *File) ([]beam.Element, error) {
	materials := make(map[string]eurocode.Material, len(f.Materials))
	for _, m := range f.Materials {
		materials[m.Name] = m
	}
	sections := make(map[string]*section.Properties, len(f.Sections))
	for i := range f.Sections {
		sections[f.Sections[i].Name] = f.Sections[i].CalculateProperties()
	}

	elements := make([]beam.Element, 0, len(f.Elements))
	for _, spec := range f.Elements {
		e, g, err := materials[spec.Material].Moduli()
		if err != nil {
			return nil, err
		}
		props := sections[spec.Section]
		el := beam.Element{
			Name:   spec.Name,
			Length: spec.Length,
			E:      e * mpaToKNm2,
			G:      g * mpaToKNm2,
			A:      props.Area * mm2ToM2,
			Iy:     props.Iy * mm4ToM4,
			Iz:     props.Iz * mm4ToM4,
			J:      props.J * mm4ToM4,
		}
		if err := el.Validate(); err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

func loadCaseInputs(lc LoadCaseSpec, elements []beam.Element, index map[string]int) ([]action.Input, error) {
	var inputs []action.Input
	for i, el := range elements {
		inputs = append(inputs, beam.Zero(i, el)...)
	}
	for _, ld := range lc.Loads {
		i := index[ld.Element]
		effects, err := beam.Effects(i, elements[i], beam.PointLoad{
			Position: ld.Position,
			Fx:       ld.Fx,
			Fy:       ld.Fy,
			Fz:       ld.Fz,
			Tx:       ld.Tx,
		})
		if err != nil {
			return nil, fmt.Errorf("load case %s: %w", lc.Name, err)
		}
		inputs = append(inputs, effects...)
	}
	return inputs, nil
}
