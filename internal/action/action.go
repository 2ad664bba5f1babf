package action

import (
	"errors"
	"fmt"
)

// ErrFailed is returned when reading diagrams of an action whose
// post-processing pass was aborted
var ErrFailed = errors.New("action post-processing failed")

// Action is a load case together with its diagrams
type Action struct {
	Name     string
	Category string

	diagrams *DiagramSet
	err      error
}

// New creates an action whose diagrams cover numElements elements
func New(name, category string, numElements int, opts ...Option) (*Action, error) {
	ds, err := NewDiagramSet(numElements, opts...)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", name, err)
	}
	return &Action{Name: name, Category: category, diagrams: ds}, nil
}

// Apply runs one post-processing pass over inputs. The first error aborts
// the pass and marks the action failed; its diagrams must then be discarded.
func (a *Action) Apply(inputs []Input) error {
	if a.err != nil {
		return a.err
	}
	for i, in := range inputs {
		if err := a.diagrams.Accumulate(in.Cell, in.Contribution); err != nil {
			a.err = fmt.Errorf("action %s: input %d: %w", a.Name, i, err)
			return a.err
		}
	}
	return nil
}

// Fail marks the action failed when its inputs could not be produced
func (a *Action) Fail(err error) {
	if a.err == nil && err != nil {
		a.err = fmt.Errorf("action %s: %w", a.Name, err)
	}
}

// Failed reports whether a pass was aborted
func (a *Action) Failed() bool { return a.err != nil }

// Err returns the error that aborted the pass, if any
func (a *Action) Err() error { return a.err }

// Diagrams returns the action's diagram set, or ErrFailed
func (a *Action) Diagrams() (*DiagramSet, error) {
	if a.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailed, a.err)
	}
	return a.diagrams, nil
}

// NumElements returns the element count of the action's diagrams
func (a *Action) NumElements() int { return a.diagrams.NumElements() }

// Term is one factored action of a combination
type Term struct {
	Action *Action
	Factor float64
}

// Combine superposes Σ factor·action into a new action
func Combine(name string, terms []Term, opts ...Option) (*Action, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("combination %s: no terms", name)
	}

	n := terms[0].Action.NumElements()
	for _, t := range terms {
		if t.Action.Failed() {
			return nil, fmt.Errorf("combination %s: %w", name, t.Action.Err())
		}
		if t.Action.NumElements() != n {
			return nil, fmt.Errorf("combination %s: action %s has %d elements, want %d", name, t.Action.Name, t.Action.NumElements(), n)
		}
	}

	combo, err := New(name, "combination", n, opts...)
	if err != nil {
		return nil, err
	}
	for cell := range combo.diagrams.Cells() {
		dst, _ := combo.diagrams.Function(cell)
		for _, t := range terms {
			if t.Factor == 0 {
				continue
			}
			src, _ := t.Action.diagrams.Function(cell)
			if err := dst.AddScaled(src, t.Factor); err != nil {
				combo.err = fmt.Errorf("combination %s: %s: %w", name, cell, err)
				return combo, combo.err
			}
		}
	}
	return combo, nil
}
