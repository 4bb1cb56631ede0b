package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repofetch/repofetch/internal/config"
	"github.com/repofetch/repofetch/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates a configuration file without fetching anything",
	Long: `Runs the structural schema check and the domain rules (username format,
repository names, paths, metrics, timeout) over a configuration file and
reports the first problem found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := validate.Config(cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Configuration is valid."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("config", "c", "", "Path to the JSON config file (required)")
	validateCmd.MarkFlagRequired("config")
}
