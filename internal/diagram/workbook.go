package diagram

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// ExportWorkbook writes the report as an XLSX workbook: a summary sheet of
// extremes and failures, then one sheet per action listing its segments.
func ExportWorkbook(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummarySheet(f, r); err != nil {
		return err
	}

	used := map[string]bool{summarySheet: true}
	names, groups := r.groupByAction()
	for _, name := range names {
		sheet := sheetName(name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeActionSheet(f, sheet, groups[name]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, r *Report) error {
	rows := [][]any{
		{r.Title},
		{"Project", r.Project},
		{},
		{"Action", "Description", "Element", "Diagram", "x(min)", "min", "x(max)", "max"},
	}
	for _, s := range r.Summaries() {
		rows = append(rows, []any{
			s.Action, s.Description, s.Element, s.Cell.Name(),
			s.Min.X, s.Min.Y, s.Max.X, s.Max.Y,
		})
	}
	if len(r.Failures) > 0 {
		rows = append(rows, []any{}, []any{"Failed action", "Error"})
		for _, fl := range r.Failures {
			rows = append(rows, []any{fl.Action, fl.Err.Error()})
		}
	}

	if err := setRows(f, summarySheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func writeActionSheet(f *excelize.File, sheet string, entries []Entry) error {
	degree := 0
	for _, e := range entries {
		degree = max(degree, e.Function.Degree())
	}

	header := []any{"Element", "Diagram", "Start", "End"}
	for k := 0; k <= degree; k++ {
		header = append(header, fmt.Sprintf("c%d", k))
	}
	header = append(header, "f(Start)", "f(End)")

	rows := [][]any{header}
	for _, e := range entries {
		for seg := range e.Function.Dump() {
			row := []any{e.Element, e.Cell.Name(), seg.Start, seg.End}
			for k := 0; k <= degree; k++ {
				var c float64
				if k < len(seg.Coeffs) {
					c = seg.Coeffs[k]
				}
				row = append(row, c)
			}
			row = append(row, seg.ValueAtStart, seg.ValueAtEnd)
			rows = append(rows, row)
		}
	}
	return setRows(f, sheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName makes an action name a valid, unique worksheet name
func sheetName(name string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, name)
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Action"
	}
	if r := []rune(base); len(r) > 31 {
		base = string(r[:31])
	}

	candidate := base
	for i := 2; used[candidate]; i++ {
		suffix := fmt.Sprintf("~%d", i)
		r := []rune(base)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		candidate = string(r) + suffix
	}
	used[candidate] = true
	return candidate
}
