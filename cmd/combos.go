package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeamdiag/internal/eurocode"
	"github.com/alexiusacademia/gobeamdiag/internal/project"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	comboCases  map[string]string
	comboValues map[string]string
	comboKinds  []string
)

var combosCmd = &cobra.Command{
	Use:   "combos [project.yaml]",
	Short: "List EN 1990 load combinations",
	Long: `List the EN 1990 load combinations generated for a set of load cases.

Load cases come from a project file or from --case NAME=CATEGORY flags.
Give --value NAME=VALUE to combine one action effect per load case and
find the governing combination.

Categories:
  permanent
  imposed-a .. imposed-e  (imposed = imposed-a)
  roof, snow, wind, temperature

Kinds:
  uls       - 6.10, one combination per leading variable action
  sls-char  - characteristic
  sls-freq  - frequent
  sls-qp    - quasi-permanent

Examples:
  # Combinations of a project
  gobeamdiag combos beam.yaml

  # Factored moment from unfactored moments (kN-m)
  gobeamdiag combos --case G=permanent --case Q=imposed-b --case S=snow \
    --value G=50 --value Q=30 --value S=12 --kind uls`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().StringToStringVar(&comboCases, "case", nil, "Load case category, NAME=CATEGORY")
	combosCmd.Flags().StringToStringVar(&comboValues, "value", nil, "Unfactored action effect, NAME=VALUE")
	combosCmd.Flags().StringSliceVarP(&comboKinds, "kind", "k", nil, "Combination kinds (default all)")
}

func runCombos(cmd *cobra.Command, args []string) error {
	cases, err := comboLoadCases(args)
	if err != nil {
		return err
	}

	values := make(map[string]float64, len(comboValues))
	for name, v := range comboValues {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("value of %s: %w", name, err)
		}
		values[name] = f
	}
	for name := range values {
		if !hasCase(cases, name) {
			return fmt.Errorf("value given for unknown load case %q", name)
		}
	}

	kinds := eurocode.Kinds
	if len(comboKinds) > 0 {
		kinds = nil
		for _, s := range comboKinds {
			k, err := eurocode.ParseKind(s)
			if err != nil {
				return err
			}
			kinds = append(kinds, k)
		}
	}

	// Print header
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          EN 1990 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOAD CASES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tCategory\tψ0\tψ1\tψ2\tValue\n")
	for _, lc := range cases {
		psi, _ := lc.Category.Factors()
		value := "-"
		if v, ok := values[lc.Name]; ok {
			value = fmt.Sprintf("%.2f", v)
		}
		if lc.Category == eurocode.Permanent {
			fmt.Fprintf(w, "  %s\t%s\t-\t-\t-\t%s\n", lc.Name, lc.Category, value)
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%.2f\t%s\n", lc.Name, lc.Category, psi.Psi0, psi.Psi1, psi.Psi2, value)
	}
	w.Flush()
	fmt.Println()

	for _, kind := range kinds {
		combos, err := eurocode.Generate(kind, cases)
		if err != nil {
			return err
		}

		factored := make([]float64, len(combos))
		for i, c := range combos {
			for name, factor := range c.Factors {
				factored[i] += factor * values[name]
			}
		}
		governing := -1
		if len(values) > 0 {
			governing = eurocode.Governing(factored)
		}

		fmt.Printf("%s COMBINATIONS:\n", kindTitle(kind))
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if len(values) > 0 {
			fmt.Fprintf(w, "  #\tCombination\tValue\n")
			fmt.Fprintf(w, "  ─\t───────────\t─────\n")
		} else {
			fmt.Fprintf(w, "  #\tCombination\n")
			fmt.Fprintf(w, "  ─\t───────────\n")
		}
		for i, c := range combos {
			if len(values) == 0 {
				fmt.Fprintf(w, "  %s\t%s\n", c.ID, c.Description)
				continue
			}
			marker := ""
			if i == governing {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", c.ID, c.Description, factored[i], marker)
		}
		w.Flush()
		fmt.Println()
	}
	return nil
}

func comboLoadCases(args []string) ([]eurocode.LoadCase, error) {
	var cases []eurocode.LoadCase
	if len(args) == 1 {
		f, err := project.Load(args[0])
		if err != nil {
			return nil, err
		}
		for _, lc := range f.LoadCases {
			category, _ := eurocode.ParseCategory(lc.Category)
			cases = append(cases, eurocode.LoadCase{Name: lc.Name, Category: category})
		}
	}

	names := make([]string, 0, len(comboCases))
	for name := range comboCases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if hasCase(cases, name) {
			return nil, fmt.Errorf("load case %q given twice", name)
		}
		category, err := eurocode.ParseCategory(comboCases[name])
		if err != nil {
			return nil, err
		}
		cases = append(cases, eurocode.LoadCase{Name: name, Category: category})
	}

	if len(cases) == 0 {
		return nil, errors.New("no load cases: give a project file or --case NAME=CATEGORY")
	}
	return cases, nil
}

func hasCase(cases []eurocode.LoadCase, name string) bool {
	for _, lc := range cases {
		if lc.Name == name {
			return true
		}
	}
	return false
}

func kindTitle(kind eurocode.Kind) string {
	switch kind {
	case eurocode.ULS:
		return "ULS (6.10)"
	case eurocode.SLSCharacteristic:
		return "SLS CHARACTERISTIC"
	case eurocode.SLSFrequent:
		return "SLS FREQUENT"
	case eurocode.SLSQuasiPermanent:
		return "SLS QUASI-PERMANENT"
	}
	return string(kind)
}
