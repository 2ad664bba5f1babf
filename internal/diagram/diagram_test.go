package diagram

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/alexiusacademia/gobeamdiag/internal/section"
	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// parabola returns a two-segment moment-like function over [0, 4]
func parabola(t *testing.T) *segfunc.Function {
	t.Helper()
	fn := segfunc.NewFunction()
	require.NoError(t, fn.Accumulate(0, 2, []float64{0, 5}, 0))
	require.NoError(t, fn.Accumulate(2, 4, []float64{10, -5}, 2))
	return fn
}

func testReport(t *testing.T) *Report {
	fn := parabola(t)
	return &Report{
		Title:   "Diagrams",
		Project: "Test beam",
		Entries: []Entry{
			{Action: "G", Element: "B1", Cell: action.Cell{Family: action.Effort, Component: action.Mz}, Function: fn},
			{Action: "ULS/ULS-1", Description: "1.35G", Element: "B1", Cell: action.Cell{Family: action.Effort, Component: action.Vy}, Function: fn},
		},
		Failures: []Failure{{Action: "Q", Err: errors.New("too many segments")}},
	}
}

func TestASCIIPlot(t *testing.T) {
	out, err := ASCIIPlot(parabola(t), "Mz[0]", PlotOptions{Width: 40, Height: 8})
	require.NoError(t, err)
	assert.Contains(t, out, "Mz[0]")
	assert.Contains(t, out, "x = 0 .. 4")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)

	_, err = ASCIIPlot(segfunc.NewFunction(), "empty", DefaultPlotOptions)
	assert.ErrorIs(t, err, segfunc.ErrEmptyDomain)
}

func TestWriteDumpTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDumpTable(&buf, parabola(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "c3")
	assert.Contains(t, lines[0], "f(End)")
	assert.Contains(t, lines[2], "20")
}

func TestDrawSummaryBox(t *testing.T) {
	body := []string{"Mz = 12.5 kN·m", "x = 2"}
	out := DrawSummaryBox("Governing", body)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// borders, title and separator around the body
	require.Len(t, lines, len(body)+4)
	assert.Contains(t, lines[1], "Governing")
	assert.Contains(t, lines[3], "Mz = 12.5")

	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)), line)
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{summarySheet: true}
	assert.Equal(t, "ULS-ULS-1", sheetName("ULS/ULS-1", used))
	assert.Equal(t, "ULS-ULS-1~2", sheetName("ULS:ULS-1", used))
	assert.Equal(t, "Summary~2", sheetName("Summary", used))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40), used)), 31)
	assert.Equal(t, "Action", sheetName("''", used))
}

func TestExportWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(&buf, testReport(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "G", "ULS-ULS-1"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Diagrams", title)

	rows, err := f.GetRows("G")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mz", rows[1][1])
	// second segment 10 - 5(x-2) stored as 20 - 5x
	assert.Equal(t, "20", rows[2][4])
	assert.Equal(t, "10", rows[2][len(rows[2])-2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, "Q", summary[len(summary)-1][0])
}

func TestExportReport(t *testing.T) {
	var buf bytes.Buffer
	err := ExportReport(&buf, testReport(t), PDFOptions{
		Author: "tester",
		Plots:  true,
		Date:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportPlot(t *testing.T) {
	dir := t.TempDir()
	fig := Figure{
		Title:  "Bending moment",
		XLabel: "x (m)",
		YLabel: "Mz (kN·m)",
		Series: []Series{{Label: "G", Function: parabola(t)}},
	}

	for _, name := range []string{"mz.png", "mz.svg", filepath.Join("sub", "mz.pdf")} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportPlot(fig, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	require.NoError(t, ExportPlot(fig, filepath.Join(dir, "noext")))
	_, err := os.Stat(filepath.Join(dir, "noext.png"))
	assert.NoError(t, err)

	assert.Error(t, ExportPlot(Figure{Title: "none"}, filepath.Join(dir, "x.png")))
	err = ExportPlot(Figure{Series: []Series{{Function: segfunc.NewFunction()}}}, filepath.Join(dir, "y.png"))
	assert.ErrorIs(t, err, segfunc.ErrEmptyDomain)
}

func TestExportSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r300x500.svg")
	require.NoError(t, ExportSection(section.Rectangle("R300x500", 300, 500), path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	bad := &section.Section{Name: "line", Vertices: []section.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	assert.Error(t, ExportSection(bad, filepath.Join(t.TempDir(), "bad.png")))
}
