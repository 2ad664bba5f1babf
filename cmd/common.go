package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/alexiusacademia/gobeamdiag/internal/diagram"
	"github.com/alexiusacademia/gobeamdiag/internal/project"
	"github.com/sgostarter/i/l"
)

// selection narrows a model down to some actions, elements and components
type selection struct {
	actions    []string
	elements   []string
	components []string
}

// buildModel loads a project and runs every post-processing pass. A model
// with failed actions is still returned; the failures are printed as
// warnings.
func buildModel(path string) (*project.Model, error) {
	f, err := project.Load(path)
	if err != nil {
		return nil, err
	}

	builder := project.NewBuilder(logger.WithFields(l.StringField("project", path)), cfg.ActionOptions()...)
	model, err := builder.Build(f)
	if model == nil {
		return nil, err
	}
	if err != nil {
		for _, e := range unjoin(err) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
		}
	}
	return model, nil
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func (s selection) actionsOf(model *project.Model) ([]*action.Action, error) {
	if len(s.actions) == 0 {
		return model.Actions(), nil
	}
	out := make([]*action.Action, 0, len(s.actions))
	for _, name := range s.actions {
		a, ok := model.Action(name)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s selection) elementsOf(model *project.Model) ([]int, error) {
	if len(s.elements) == 0 {
		out := make([]int, len(model.Elements))
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	out := make([]int, 0, len(s.elements))
	for _, name := range s.elements {
		i, ok := model.ElementIndex(name)
		if !ok {
			return nil, fmt.Errorf("unknown element %q", name)
		}
		out = append(out, i)
	}
	return out, nil
}

// cellsOf lists the selected cells of one element. Without a component
// filter every effort, deflection and rotation cell is returned.
func (s selection) cellsOf(element int) ([]action.Cell, error) {
	var out []action.Cell
	if len(s.components) == 0 {
		for _, fam := range action.Families {
			for c := 0; c < fam.Size(); c++ {
				out = append(out, action.Cell{Family: fam, Component: action.Component(c), Element: element})
			}
		}
		return out, nil
	}
	for _, symbol := range s.components {
		fam, comp, err := action.ParseComponent(symbol)
		if err != nil {
			return nil, err
		}
		out = append(out, action.Cell{Family: fam, Component: comp, Element: element})
	}
	return out, nil
}

// report collects the selected diagrams of a model. Failed actions are
// listed as failures instead of diagrams.
func (s selection) report(model *project.Model, title string) (*diagram.Report, error) {
	actions, err := s.actionsOf(model)
	if err != nil {
		return nil, err
	}
	elements, err := s.elementsOf(model)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(model.Combinations))
	for _, c := range model.Combinations {
		descriptions[c.Action.Name] = c.Description
	}

	r := &diagram.Report{Title: title, Project: model.Name}
	for _, a := range actions {
		ds, err := a.Diagrams()
		if err != nil {
			r.Failures = append(r.Failures, diagram.Failure{Action: a.Name, Err: a.Err()})
			continue
		}
		for _, el := range elements {
			cells, err := s.cellsOf(el)
			if err != nil {
				return nil, err
			}
			for _, cell := range cells {
				fn, err := ds.Function(cell)
				if err != nil {
					return nil, err
				}
				r.Entries = append(r.Entries, diagram.Entry{
					Action:      a.Name,
					Description: descriptions[a.Name],
					Element:     model.Elements[el].Name,
					Cell:        cell,
					Function:    fn,
				})
			}
		}
	}
	if len(r.Entries) == 0 && len(r.Failures) > 0 {
		return r, errors.New("every selected action failed")
	}
	return r, nil
}

func (s selection) describe() string {
	parts := []string{}
	if len(s.actions) > 0 {
		parts = append(parts, "actions "+strings.Join(s.actions, ", "))
	}
	if len(s.elements) > 0 {
		parts = append(parts, "elements "+strings.Join(s.elements, ", "))
	}
	if len(s.components) > 0 {
		parts = append(parts, "components "+strings.Join(s.components, ", "))
	}
	if len(parts) == 0 {
		return "all diagrams"
	}
	return strings.Join(parts, "; ")
}
