// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/repofetch/repofetch/internal/domain"
)

var rootCmd = &cobra.Command{
	Use:   "repofetch",
	Short: "A CLI tool to fetch public GitHub repository metrics.",
	Long: `repofetch validates a JSON configuration file (username plus a list of
repositories) and fetches stars, forks, branch count and recent commit count
for each repository, appending the results to a CSV file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Every failure kind maps to its own stable exit code.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor selects the process exit code for an error that reached the
// top of the command tree. Errors without a classification at this boundary
// are cobra usage errors (unknown flag, missing --config), since every
// pipeline error is classified before it propagates this far.
func exitCodeFor(err error) int {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Kind.ExitCode()
	}
	return domain.ExitUsage
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
