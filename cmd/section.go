package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeamdiag/internal/diagram"
	"github.com/alexiusacademia/gobeamdiag/internal/project"
	"github.com/spf13/cobra"
)

var sectionExportFormat string

var sectionCmd = &cobra.Command{
	Use:   "section <project.yaml>",
	Short: "Print section and material properties of a project",
	Long: `Print the geometric properties of every section of a project and the
elastic moduli of every material.

Sections are polygons with vertices in mm, counter-clockwise. Any simple
polygon works (T-beams, L-beams, ...). The torsion constant J is
approximated unless given in the project file.

Example section:
  sections:
    - name: T600x500
      vertices:
        - {x: 0, y: 400}
        - {x: 150, y: 400}
        - {x: 150, y: 0}
        - {x: 450, y: 0}
        - {x: 450, y: 400}
        - {x: 600, y: 400}
        - {x: 600, y: 500}
        - {x: 0, y: 500}

Examples:
  gobeamdiag section beam.yaml
  gobeamdiag section beam.yaml --export svg`,
	Args: cobra.ExactArgs(1),
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVar(&sectionExportFormat, "export", "", "Draw each section to the output directory (png, svg, pdf)")
}

func runSection(cmd *cobra.Command, args []string) error {
	f, err := project.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          SECTION AND MATERIAL PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("MATERIALS (MPa):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tKind\tfck\tE\tG\n")
	for _, m := range f.Materials {
		e, g, err := m.Moduli()
		if err != nil {
			return err
		}
		fck := "-"
		if m.Fck > 0 {
			fck = fmt.Sprintf("%.0f", m.Fck)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.0f\t%.0f\n", m.Name, m.Kind, fck, e, g)
	}
	w.Flush()
	fmt.Println()

	for i := range f.Sections {
		sec := &f.Sections[i]
		props := sec.CalculateProperties()

		lines := []string{
			fmt.Sprintf("Width × Height  = %.1f × %.1f mm", props.Width, props.Height),
			fmt.Sprintf("Area A          = %.1f mm²", props.Area),
			fmt.Sprintf("Centroid        = (%.1f, %.1f) mm", props.CentroidX, props.CentroidY),
			fmt.Sprintf("Iz              = %.4e mm⁴", props.Iz),
			fmt.Sprintf("Iy              = %.4e mm⁴", props.Iy),
			fmt.Sprintf("J               = %.4e mm⁴", props.J),
		}
		if sec.Description != "" {
			lines = append([]string{sec.Description}, lines...)
		}
		fmt.Print(diagram.DrawSummaryBox("SECTION "+sec.Name, lines))
		fmt.Println()

		if sectionExportFormat != "" {
			name := filepath.Join(cfg.OutputDir, fmt.Sprintf("section_%s.%s", fileSafe(sec.Name), sectionExportFormat))
			if err := diagram.ExportSection(sec, name); err != nil {
				return err
			}
			fmt.Printf("  Section drawing exported to: %s\n\n", name)
		}
	}
	return nil
}
