package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobeamdiag/internal/diagram"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
)

var (
	exportSel    selection
	exportFormat string
	exportOut    string
	exportPlots  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <project.yaml>",
	Short: "Export diagrams as plots, an XLSX workbook or a PDF report",
	Long: `Export the diagrams of a project.

Formats:
  xlsx  - workbook with an extremes summary and one sheet of segments per action
  pdf   - report with extremes, failures and segment tables
  png   - one plot per element and component, one curve per action
  svg   - same as png

Files are written to --out, or to GOBEAMDIAG_OUTPUT_DIR (default "output").

Examples:
  gobeamdiag export beam.yaml --format xlsx
  gobeamdiag export beam.yaml --format pdf --plots -c Mz,uy
  gobeamdiag export beam.yaml --format png -a G -a Q -c Mz --out plots`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVarP(&exportSel.actions, "action", "a", nil, "Load cases or combinations (default all)")
	exportCmd.Flags().StringSliceVarP(&exportSel.elements, "element", "e", nil, "Elements (default all)")
	exportCmd.Flags().StringSliceVarP(&exportSel.components, "component", "c", nil, "Components (default all)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "Output format: xlsx, pdf, png, svg")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory")
	exportCmd.Flags().BoolVar(&exportPlots, "plots", false, "Embed plots in the PDF report")
}

func runExport(cmd *cobra.Command, args []string) error {
	model, err := buildModel(args[0])
	if err != nil {
		return err
	}
	r, err := exportSel.report(model, fmt.Sprintf("%s - diagrams", model.Name))
	if err != nil {
		return err
	}

	dir := exportOut
	if dir == "" {
		dir = cfg.OutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

	var files []string
	switch format := strings.ToLower(exportFormat); format {
	case "xlsx":
		name := filepath.Join(dir, base+".xlsx")
		if err := writeFile(name, func(f *os.File) error { return diagram.ExportWorkbook(f, r) }); err != nil {
			return err
		}
		files = append(files, name)
	case "pdf":
		name := filepath.Join(dir, base+".pdf")
		opts := diagram.PDFOptions{Author: cfg.Author, Plots: exportPlots}
		if err := writeFile(name, func(f *os.File) error { return diagram.ExportReport(f, r, opts) }); err != nil {
			return err
		}
		files = append(files, name)
	case "png", "svg":
		files, err = exportFigures(r, dir, format)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}

	fmt.Println()
	fmt.Printf("EXPORTED (%s):\n", exportSel.describe())
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, name := range files {
		fmt.Printf("  %s\n", name)
	}
	for _, f := range r.Failures {
		fmt.Printf("  %s skipped: %v\n", f.Action, f.Err)
	}
	fmt.Println()
	return nil
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

// exportFigures writes one figure per element and component with a curve
// per action
func exportFigures(r *diagram.Report, dir, ext string) ([]string, error) {
	type key struct{ element, component string }
	var order []key
	figures := make(map[key]*diagram.Figure)

	for _, e := range r.Entries {
		k := key{e.Element, e.Cell.Name()}
		fig, ok := figures[k]
		if !ok {
			fig = &diagram.Figure{
				Title:  fmt.Sprintf("%s  %s", e.Element, e.Cell.Name()),
				XLabel: "x (m)",
				YLabel: e.Cell.Name(),
			}
			figures[k] = fig
			order = append(order, k)
		}
		fig.Series = append(fig.Series, diagram.Series{Label: e.Action, Function: e.Function})
	}

	files := make([]string, 0, len(order))
	for _, k := range order {
		name := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", fileSafe(k.element), k.component, ext))
		if err := diagram.ExportPlot(*figures[k], name); err != nil {
			return nil, fmt.Errorf("plot %s: %w", name, err)
		}
		logger.WithFields(l.StringField("file", name)).Debug("plot written")
		files = append(files, name)
	}
	return files, nil
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>| `, r) {
			return '_'
		}
		return r
	}, s)
}
