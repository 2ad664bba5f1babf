package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeamdiag/internal/diagram"
	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"github.com/spf13/cobra"
)

var (
	evalSel   selection
	evalAt    []float64
	evalSteps int
)

var evalCmd = &cobra.Command{
	Use:   "eval <project.yaml>",
	Short: "Evaluate diagrams at given abscissae",
	Long: `Evaluate diagrams of a project at given positions along the element.

Positions are in m from the start of the element. With --steps the
element is divided into equal intervals instead.

Examples:
  # Moment and shear of B1 under G at 1.5 m and 3 m
  gobeamdiag eval beam.yaml -a G -e B1 -c Mz,Vy --at 1.5 --at 3

  # Deflection at the tenth points of every element
  gobeamdiag eval beam.yaml -a SLS/SLS-QP-1 -c uy --steps 10`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringSliceVarP(&evalSel.actions, "action", "a", nil, "Load cases or combinations (default all)")
	evalCmd.Flags().StringSliceVarP(&evalSel.elements, "element", "e", nil, "Elements (default all)")
	evalCmd.Flags().StringSliceVarP(&evalSel.components, "component", "c", nil, "Components (required), e.g. Mz,Vy,uy")
	evalCmd.Flags().Float64SliceVar(&evalAt, "at", nil, "Positions along the element (m)")
	evalCmd.Flags().IntVar(&evalSteps, "steps", 0, "Evaluate at steps+1 evenly spaced positions")

	evalCmd.MarkFlagRequired("component")
}

func runEval(cmd *cobra.Command, args []string) error {
	if len(evalAt) == 0 && evalSteps <= 0 {
		return errors.New("give positions with --at or a number of intervals with --steps")
	}

	model, err := buildModel(args[0])
	if err != nil {
		return err
	}
	r, err := evalSel.report(model, "Values")
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("VALUES (%s):\n", evalSel.describe())
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Action\tElement\tDiagram\tx\tvalue\n")
	fmt.Fprintf(w, "  ──────\t───────\t───────\t─\t─────\n")
	for _, e := range r.Entries {
		for _, x := range positions(e.Function) {
			y, err := e.Function.Evaluate(x)
			if errors.Is(err, segfunc.ErrOutOfDomain) {
				fmt.Fprintf(w, "  %s\t%s\t%s\t%.3f\t(outside element)\n", e.Action, e.Element, e.Cell.Name(), x)
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.3f\t%.6g\n", e.Action, e.Element, e.Cell.Name(), x, y)
		}
	}
	w.Flush()
	fmt.Println()

	for _, f := range r.Failures {
		fmt.Printf("  %s FAILED: %v\n", f.Action, f.Err)
	}
	if len(r.Failures) > 0 {
		fmt.Println()
	}

	if len(r.Entries) == 1 {
		lo, hi, err := r.Entries[0].Function.Extremes()
		if err == nil {
			fmt.Print(diagram.DrawSummaryBox(r.Entries[0].Cell.Name(), []string{
				fmt.Sprintf("min = %.6g at x = %.3f", lo.Y, lo.X),
				fmt.Sprintf("max = %.6g at x = %.3f", hi.Y, hi.X),
			}))
			fmt.Println()
		}
	}
	return nil
}

func positions(fn *segfunc.Function) []float64 {
	if evalSteps <= 0 {
		return evalAt
	}
	pts, err := fn.Sample(evalSteps + 1)
	if err != nil {
		return nil
	}
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
	}
	return xs
}
