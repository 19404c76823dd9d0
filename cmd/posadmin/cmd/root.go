package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time via ldflags)
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "posadmin",
	Short: "posadmin - Back-office administration console",
	Long: `posadmin is a terminal console for back-office administration.

It manages, per company:
  - Users and their role assignments
  - Suppliers with their commercial and document data

The console talks to the backend REST API; all data lives there and
every change is re-read from the backend after it is applied.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionString returns formatted version information
func versionString() string {
	return fmt.Sprintf("posadmin %s (commit: %s, built: %s)",
		Version, Commit, BuildDate)
}
