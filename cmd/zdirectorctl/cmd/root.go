// Package cmd implements the zdirectorctl command tree: run, simulate, and
// version, each subcommand registering itself onto the shared rootCmd from
// its own init.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "zdirectorctl",
	Short:   "Collection-scheduling director control CLI",
	Version: Version,
	Long: `zdirectorctl drives a rule-based collection-scheduling director:

  run        Start the director against a synthetic heap/statistics embedding
  simulate   Run the director against a synthetic mutator workload
  version    Print version information
`,
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
