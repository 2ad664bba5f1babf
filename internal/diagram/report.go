package diagram

import (
	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
)

// Entry is the diagram of one cell of one action
type Entry struct {
	Action      string
	Description string
	Element     string
	Cell        action.Cell
	Function    *segfunc.Function
}

// Failure is an action whose diagrams must not be shown
type Failure struct {
	Action string
	Err    error
}

// Report is the content of a workbook or PDF export
type Report struct {
	Title    string
	Project  string
	Entries  []Entry
	Failures []Failure
}

// Summary is the extreme values of an entry
type Summary struct {
	Entry
	Min segfunc.Point
	Max segfunc.Point
}

// Summaries computes the extremes of every entry. Entries without a domain
// are skipped.
func (r *Report) Summaries() []Summary {
	out := make([]Summary, 0, len(r.Entries))
	for _, e := range r.Entries {
		lo, hi, err := e.Function.Extremes()
		if err != nil {
			continue
		}
		out = append(out, Summary{Entry: e, Min: lo, Max: hi})
	}
	return out
}

// groupByAction keeps the order in which actions first appear
func (r *Report) groupByAction() (names []string, groups map[string][]Entry) {
	groups = make(map[string][]Entry)
	for _, e := range r.Entries {
		if _, ok := groups[e.Action]; !ok {
			names = append(names, e.Action)
		}
		groups[e.Action] = append(groups[e.Action], e)
	}
	return names, groups
}
