package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/alexiusacademia/gobeamdiag/internal/diagram"
	"github.com/alexiusacademia/gobeamdiag/internal/project"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
)

var (
	runSel      selection
	runPlot     bool
	runDump     bool
	runAllCells bool
)

var runCmd = &cobra.Command{
	Use:   "run <project.yaml>",
	Short: "Build and print the diagrams of a project",
	Long: `Build the diagrams of every load case and combination of a project and
print the extreme value of each diagram.

Diagrams that are zero everywhere are hidden unless --all or --component
is given. Failed load cases are reported instead of their diagrams.

Examples:
  # Extremes of every diagram
  gobeamdiag run beam.yaml

  # Bending moment of one element, with segment table and plot
  gobeamdiag run beam.yaml --element B1 --component Mz --dump --plot

  # Only the ULS combinations
  gobeamdiag run beam.yaml --action ULS/ULS-1 --action ULS/ULS-2`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVarP(&runSel.actions, "action", "a", nil, "Load cases or combinations to show (default all)")
	runCmd.Flags().StringSliceVarP(&runSel.elements, "element", "e", nil, "Elements to show (default all)")
	runCmd.Flags().StringSliceVarP(&runSel.components, "component", "c", nil, "Components to show: N Vy Vz Mx My Mz ux uy uz rx ry rz")
	runCmd.Flags().BoolVarP(&runPlot, "plot", "p", false, "Draw a terminal plot of each diagram")
	runCmd.Flags().BoolVarP(&runDump, "dump", "d", false, "Print the segment table of each diagram")
	runCmd.Flags().BoolVar(&runAllCells, "all", false, "Include diagrams that are zero everywhere")
}

func runRun(cmd *cobra.Command, args []string) error {
	model, err := buildModel(args[0])
	if err != nil {
		return err
	}
	r, err := runSel.report(model, "Diagrams")
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("          %s\n", model.Name)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printElements(model)

	showZero := runAllCells || len(runSel.components) > 0
	current := ""
	var w *tabwriter.Writer
	for _, e := range r.Entries {
		lo, hi, err := e.Function.Extremes()
		if err != nil {
			return fmt.Errorf("%s %s: %w", e.Action, e.Cell, err)
		}
		if !showZero && lo.Y == 0 && hi.Y == 0 {
			continue
		}

		if e.Action != current {
			if w != nil {
				w.Flush()
				fmt.Println()
			}
			current = e.Action
			title := "ACTION: " + e.Action
			if e.Description != "" {
				title += " = " + e.Description
			}
			fmt.Println(title)
			fmt.Println("───────────────────────────────────────────────────────────────")
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Element\tDiagram\tx(min)\tmin\tx(max)\tmax\n")
			fmt.Fprintf(w, "  ───────\t───────\t──────\t───\t──────\t───\n")
		}
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.6g\t%.3f\t%.6g\n", e.Element, e.Cell.Name(), lo.X, lo.Y, hi.X, hi.Y)

		if runDump || runPlot {
			w.Flush()
			if runDump {
				fmt.Println()
				if err := diagram.WriteDumpTable(os.Stdout, e.Function); err != nil {
					return err
				}
			}
			if runPlot {
				plot, err := diagram.ASCIIPlot(e.Function, fmt.Sprintf("%s %s %s", e.Action, e.Element, e.Cell.Name()), plotOptions())
				if err != nil {
					return err
				}
				fmt.Println()
				fmt.Println(plot)
			}
			fmt.Println()
		}
	}
	if w != nil {
		w.Flush()
		fmt.Println()
	}

	for _, f := range r.Failures {
		fmt.Printf("ACTION: %s\n", f.Action)
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Printf("  FAILED: %v\n\n", f.Err)
	}

	if len(runSel.actions) == 0 && len(model.Combinations) > 0 {
		return printGoverning(model)
	}
	return nil
}

func printElements(model *project.Model) {
	fmt.Println("ELEMENTS (kN, m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tL\tE\tA\tIy\tIz\tJ\n")
	for _, el := range model.Elements {
		fmt.Fprintf(w, "  %s\t%.3f\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n", el.Name, el.Length, el.E, el.A, el.Iy, el.Iz, el.J)
	}
	w.Flush()
	fmt.Println()
}

func printGoverning(model *project.Model) error {
	elements, err := runSel.elementsOf(model)
	if err != nil {
		return err
	}

	fmt.Println("GOVERNING COMBINATIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Element\tDiagram\tCombination\tx\tvalue\n")
	fmt.Fprintf(w, "  ───────\t───────\t───────────\t─\t─────\n")
	for _, el := range elements {
		cells, err := runSel.cellsOf(el)
		if err != nil {
			return err
		}
		for _, cell := range cells {
			if len(runSel.components) == 0 && cell.Family != action.Effort {
				continue
			}
			combo, p, err := model.Governing(cell)
			if err != nil {
				logger.WithFields(l.ErrorField(err), l.StringField("cell", cell.String())).Debug("no governing combination")
				continue
			}
			if p.Y == 0 && !runAllCells {
				continue
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.3f\t%.6g\n", model.Elements[el].Name, cell.Name(), combo.Action.Name, p.X, p.Y)
		}
	}
	w.Flush()
	fmt.Println()
	return nil
}

func plotOptions() diagram.PlotOptions {
	return diagram.PlotOptions{Width: cfg.PlotWidth, Height: cfg.PlotHeight, Samples: cfg.Samples}
}
