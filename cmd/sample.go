package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repofetch/repofetch/internal/config"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Prints a sample configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.Sample)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
