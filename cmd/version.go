package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobeamdiag/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobeamdiag",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gobeamdiag v%s\n", version.Version)
		fmt.Println("Beam internal force, deflection and rotation diagrams")
		fmt.Println("Load combinations to EN 1990")
		if version.GitCommit != "unknown" {
			fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
