package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gobeamdiag/internal/config"
	"github.com/alexiusacademia/gobeamdiag/internal/version"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
)

var (
	envFiles    []string
	verbose     bool
	maxSegments int
	samples     int

	cfg    config.Config
	logger l.Wrapper = l.NewNopLoggerWrapper()
)

var rootCmd = &cobra.Command{
	Use:   "gobeamdiag",
	Short: "Internal force, deflection and rotation diagrams for beam elements",
	Long: `gobeamdiag - Go Beam Diagrams

A CLI tool that builds exact piecewise-polynomial diagrams of internal
forces (N, Vy, Vz, Mx, My, Mz), deflections (ux, uy, uz) and rotations
(rx, ry, rz) along beam elements.

Load cases and EN 1990 combinations are read from a YAML project file.
Diagrams can be printed, evaluated at any abscissa, or exported as
plots, XLSX workbooks and PDF reports.

Settings are read from .env and GOBEAMDIAG_* environment variables;
command-line flags take precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(envFiles...)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("verbose") {
			c.Verbose = verbose
		}
		if flags.Changed("max-segments") {
			c.MaxSegments = maxSegments
		}
		if flags.Changed("samples") {
			c.Samples = samples
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if cfg.Verbose {
			logger = l.NewConsoleLoggerWrapper()
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobeamdiag v%-44s║\n", version.Version)
		fmt.Println("  ║   Go Beam Diagrams                                        ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Exact internal force, deflection and rotation diagrams")
		fmt.Println("  for beam elements under point loads.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Piecewise-polynomial diagrams per element and load case")
		fmt.Println("    • EN 1990 ULS and SLS load combinations")
		fmt.Println("    • Extreme values and governing combinations")
		fmt.Println("    • Plot, XLSX and PDF export")
		fmt.Println()
		fmt.Println("  Use 'gobeamdiag --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "Environment files to read (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log post-processing passes to the console")
	rootCmd.PersistentFlags().IntVar(&maxSegments, "max-segments", 0, "Maximum segments per diagram, 0 for no limit")
	rootCmd.PersistentFlags().IntVar(&samples, "samples", 0, "Points per terminal plot")
}
