package diagram

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"github.com/guptarohit/asciigraph"
)

// PlotOptions controls the size of a terminal plot
type PlotOptions struct {
	Width   int // columns, 0 keeps one column per sample
	Height  int // rows
	Samples int
}

// DefaultPlotOptions fit an 80 column terminal
var DefaultPlotOptions = PlotOptions{Width: 60, Height: 12, Samples: 121}

// ASCIIPlot draws a function as a terminal line chart
func ASCIIPlot(fn *segfunc.Function, caption string, opts PlotOptions) (string, error) {
	if opts.Samples < 2 {
		opts.Samples = DefaultPlotOptions.Samples
	}
	if opts.Height <= 0 {
		opts.Height = DefaultPlotOptions.Height
	}

	pts, err := fn.Sample(opts.Samples)
	if err != nil {
		return "", err
	}
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}

	graphOpts := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s  [x = %g .. %g]", caption, pts[0].X, pts[len(pts)-1].X)),
	}
	if opts.Width > 0 {
		graphOpts = append(graphOpts, asciigraph.Width(opts.Width))
	}
	return asciigraph.Plot(ys, graphOpts...), nil
}

// WriteDumpTable writes one row per segment: bounds, coefficients and end
// values.
func WriteDumpTable(w io.Writer, fn *segfunc.Function) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"Start", "End"}
	for k := 0; k <= fn.Degree(); k++ {
		header = append(header, fmt.Sprintf("c%d", k))
	}
	header = append(header, "f(Start)", "f(End)")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for r := range fn.Dump() {
		row := []string{formatValue(r.Start), formatValue(r.End)}
		for _, c := range r.Coeffs {
			row = append(row, formatValue(c))
		}
		row = append(row, formatValue(r.ValueAtStart), formatValue(r.ValueAtEnd))
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

func formatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%.6g", v)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-fills s to n runes; %-*s counts bytes and breaks on symbols
// such as ψ.
func pad(s string, n int) string {
	if d := n - len([]rune(s)); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
