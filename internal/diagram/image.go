package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one labelled curve of a plot
type Series struct {
	Label    string
	Function *segfunc.Function
}

// Figure describes a diagram plot
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series

	// PointsPerSegment is the polyline resolution, default 16
	PointsPerSegment int
}

var palette = []color.Color{
	color.RGBA{R: 0, G: 0, B: 139, A: 255},
	color.RGBA{R: 178, G: 34, B: 34, A: 255},
	color.RGBA{R: 0, G: 100, B: 0, A: 255},
	color.RGBA{R: 255, G: 140, B: 0, A: 255},
	color.RGBA{R: 106, G: 90, B: 205, A: 255},
}

func (fig Figure) build() (*plot.Plot, error) {
	if len(fig.Series) == 0 {
		return nil, fmt.Errorf("figure %q has no series", fig.Title)
	}
	per := fig.PointsPerSegment
	if per <= 0 {
		per = 16
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(plotter.NewGrid())

	lower, upper := 0.0, 0.0
	for i, s := range fig.Series {
		pts := s.Function.Polyline(per)
		if len(pts) == 0 {
			return nil, fmt.Errorf("series %q: %w", s.Label, segfunc.ErrEmptyDomain)
		}
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		if i == 0 || pts[0].X < lower {
			lower = pts[0].X
		}
		if i == 0 || pts[len(pts)-1].X > upper {
			upper = pts[len(pts)-1].X
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = palette[i%len(palette)]
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}

	// Zero reference line
	axis, err := plotter.NewLine(plotter.XYs{{X: lower, Y: 0}, {X: upper, Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Gray{Y: 128}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(axis)

	return p, nil
}

// ExportPlot saves a figure. The format follows the file extension (.png,
// .svg, .pdf); anything else gets .png appended.
func ExportPlot(fig Figure, filename string) error {
	p, err := fig.build()
	if err != nil {
		return err
	}

	width := 8 * vg.Inch
	height := 5 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// WritePlot renders a figure to w in the given format ("png", "svg", "pdf")
func WritePlot(w io.Writer, fig Figure, format string, width, height vg.Length) error {
	p, err := fig.build()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
