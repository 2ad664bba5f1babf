package diagram

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"
)

// PDFOptions controls the PDF report
type PDFOptions struct {
	Author string
	Plots  bool // embed one plot per diagram
	Date   time.Time
}

// ExportReport writes the report as an A4 PDF: header, extremes table,
// failures and, per action, the segment table of every diagram.
func ExportReport(w io.Writer, r *Report, opts PDFOptions) error {
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, false)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, false)
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", r.Project))
	pdf.Ln(6)
	if opts.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", opts.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", opts.Date.Format("2006-01-02")))
	pdf.Ln(10)

	writeExtremesTable(pdf, r)

	if len(r.Failures) > 0 {
		pdf.Ln(4)
		heading(pdf, "Failed actions")
		pdf.SetFont("Helvetica", "", 9)
		for _, fl := range r.Failures {
			pdf.MultiCell(0, 5, fmt.Sprintf("%s: %v", fl.Action, fl.Err), "", "L", false)
		}
	}

	names, groups := r.groupByAction()
	for i, name := range names {
		pdf.AddPage()
		heading(pdf, name)
		if d := groups[name][0].Description; d != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.Cell(0, 6, d)
			pdf.Ln(8)
		}
		for j, e := range groups[name] {
			if opts.Plots {
				if err := embedPlot(pdf, fmt.Sprintf("plot-%d-%d", i, j), e); err != nil {
					return err
				}
			}
			writeSegmentTable(pdf, e)
		}
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
}

func writeExtremesTable(pdf *gofpdf.Fpdf, r *Report) {
	heading(pdf, "Extreme values")

	widths := []float64{38, 22, 18, 24, 26, 24, 26}
	header := []string{"Action", "Element", "Diagram", "x(min)", "min", "x(max)", "max"}
	tableHeader(pdf, widths, header)

	pdf.SetFont("Helvetica", "", 8)
	for _, s := range r.Summaries() {
		row := []string{
			s.Action, s.Element, s.Cell.Name(),
			formatValue(s.Min.X), formatValue(s.Min.Y),
			formatValue(s.Max.X), formatValue(s.Max.Y),
		}
		tableRow(pdf, widths, row)
	}
}

func writeSegmentTable(pdf *gofpdf.Fpdf, e Entry) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s  %s", e.Element, e.Cell.Name()))
	pdf.Ln(7)

	n := e.Function.Degree() + 1
	header := []string{"Start", "End"}
	for k := 0; k < n; k++ {
		header = append(header, fmt.Sprintf("c%d", k))
	}
	header = append(header, "f(Start)", "f(End)")
	widths := make([]float64, len(header))
	for i := range widths {
		widths[i] = 180 / float64(len(header))
	}
	tableHeader(pdf, widths, header)

	pdf.SetFont("Helvetica", "", 8)
	for seg := range e.Function.Dump() {
		row := []string{formatValue(seg.Start), formatValue(seg.End)}
		for k := 0; k < n; k++ {
			var c float64
			if k < len(seg.Coeffs) {
				c = seg.Coeffs[k]
			}
			row = append(row, formatValue(c))
		}
		row = append(row, formatValue(seg.ValueAtStart), formatValue(seg.ValueAtEnd))
		tableRow(pdf, widths, row)
	}
	pdf.Ln(4)
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, cols []string) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *gofpdf.Fpdf, widths []float64, cols []string) {
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 5, c, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func embedPlot(pdf *gofpdf.Fpdf, name string, e Entry) error {
	fig := Figure{
		Title:  fmt.Sprintf("%s  %s", e.Element, e.Cell.Name()),
		XLabel: "x (m)",
		YLabel: e.Cell.Name(),
		Series: []Series{{Function: e.Function}},
	}
	var buf bytes.Buffer
	if err := WritePlot(&buf, fig, "png", 6*vg.Inch, 3*vg.Inch); err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	pdf.ImageOptions(name, 15, pdf.GetY(), 150, 0, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(2)
	return nil
}
