package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/repofetch/repofetch/internal/config"
	"github.com/repofetch/repofetch/internal/domain"
	"github.com/repofetch/repofetch/internal/gateway"
	"github.com/repofetch/repofetch/internal/logging"
	"github.com/repofetch/repofetch/internal/output"
	"github.com/repofetch/repofetch/internal/usecase"
)

const (
	defaultOutputPath = "repo_stats.csv"
	defaultTimeout    = 30 * time.Second
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches repository metrics and appends them to a CSV file",
	Long: `Validates the configuration, fetches stars, forks, branch count and recent
commit count for every configured repository, and appends one CSV row per
repository. If any repository fails to fetch completely, nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd)
	},
}

func runFetch(cmd *cobra.Command) error {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	outputFlag, _ := cmd.Flags().GetString("output")
	usernameFlag, _ := cmd.Flags().GetString("username")
	timeoutFlag, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// CLI overrides take precedence over file values and go through the same
	// validation as the file values they replace.
	if usernameFlag != "" {
		cfg.Username = usernameFlag
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = &timeoutFlag
	}

	logger := logging.New(verbose)
	if cfg.Path != nil && cfg.Path.LogPath != "" {
		fileLogger, logFile, err := logging.NewWithFile(verbose, cfg.Path.LogPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Path.LogPath).Msg("cannot open log file, logging to stderr only")
		} else {
			defer logFile.Close()
			logger = fileLogger
		}
	}

	// The configured timeout is a transport knob: it bounds each HTTP call
	// and is not enforced anywhere else in the pipeline.
	timeout := defaultTimeout
	if cfg.Timeout != nil {
		timeout = time.Duration(*cfg.Timeout) * time.Second
	}
	gw, err := gateway.NewGitHubGateway(timeout, logger)
	if err != nil {
		return domain.WrapE(domain.KindUnclassified, err, "failed to create GitHub gateway")
	}

	runner := usecase.NewRunner(
		usecase.NewCollector(gw, logger),
		output.NewCSVWriter(logger),
		logger,
		cmd.OutOrStdout(),
	)
	return runner.Run(cmd.Context(), cfg, resolveOutputPath(outputFlag, cfg))
}

// resolveOutputPath picks the CSV destination: flag over config over default.
func resolveOutputPath(flagValue string, cfg *domain.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Path != nil && cfg.Path.OutputPath != "" {
		return cfg.Path.OutputPath
	}
	return defaultOutputPath
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("config", "c", "", "Path to the JSON config file (required)")
	fetchCmd.MarkFlagRequired("config")
	fetchCmd.Flags().StringP("output", "o", "", "CSV output path (overrides path.output_path from the config)")
	fetchCmd.Flags().String("username", "", "Override username from the config file")
	fetchCmd.Flags().Int("timeout", 0, "Override timeout from the config file, in seconds")
}
