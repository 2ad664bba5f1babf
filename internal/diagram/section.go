package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gobeamdiag/internal/section"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportSection draws a section outline with its centroidal axes
func ExportSection(sec *section.Section, filename string) error {
	if err := sec.Validate(); err != nil {
		return err
	}
	props := sec.CalculateProperties()

	p := plot.New()
	p.Title.Text = sec.Name
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	outline := make(plotter.XYs, len(sec.Vertices)+1)
	for i, v := range sec.Vertices {
		outline[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	outline[len(sec.Vertices)] = outline[0]

	fill, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	fill.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	fill.LineStyle.Width = vg.Points(2)
	fill.LineStyle.Color = color.Black
	p.Add(fill)

	margin := 0.1 * max(props.Width, props.Height)
	axes := []plotter.XYs{
		{{X: props.MinX - margin, Y: props.CentroidY}, {X: props.MaxX + margin, Y: props.CentroidY}},
		{{X: props.CentroidX, Y: props.MinY - margin}, {X: props.CentroidX, Y: props.MaxY + margin}},
	}
	for _, pts := range axes {
		axis, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		axis.LineStyle.Width = vg.Points(1)
		axis.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		axis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(axis)
	}

	centroid, err := plotter.NewScatter(plotter.XYs{{X: props.CentroidX, Y: props.CentroidY}})
	if err != nil {
		return err
	}
	centroid.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	centroid.GlyphStyle.Radius = vg.Points(4)
	centroid.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(centroid)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: props.CentroidX + margin/4, Y: props.CentroidY + margin/4}},
		Labels: []string{fmt.Sprintf("A=%.0fmm²", props.Area)},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	// keep the outline undistorted
	side := max(props.Width, props.Height) + 2*margin
	p.X.Min, p.X.Max = props.CentroidX-side/2, props.CentroidX+side/2
	p.Y.Min, p.Y.Max = props.CentroidY-side/2, props.CentroidY+side/2

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(6*vg.Inch, 6*vg.Inch, filename)
	default:
		return p.Save(6*vg.Inch, 6*vg.Inch, filename+".png")
	}
}
