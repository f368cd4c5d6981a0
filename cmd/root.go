// Package cmd contains all CLI commands for feed-curator
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"feed-curator/internal/config"
	"feed-curator/internal/output"
)

var (
	cfgFile        string
	categoriesFile string
	verbose        bool
	dryRun         bool
	cfg            *config.Config
	logger         *slog.Logger
	version        = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "feed-curator",
	Short: "Content curation pipeline CLI",
	Long: `feed-curator pulls articles from source feeds, scores them with a
local language model, and publishes the best of each category as an
RSS artifact.

Items move through a one-directional lifecycle: pending items are
scored into processed or filtered_out, processed items become published
once their artifact entry is durable. Every command is safe to re-run;
artifact drift left by interrupted runs is repaired by reconciliation.

Example usage:
  feed-curator ingest tech             # Pull source feeds for one category
  feed-curator process tech            # Score, select and publish one category
  feed-curator process --all           # Same for every configured category
  feed-curator process --reconcile     # Repair artifact drift
  feed-curator status                  # Show store counts and recent runs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .curator.yaml)")
	rootCmd.PersistentFlags().StringVar(&categoriesFile, "categories", "", "categories file (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would be done without writing anything")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if categoriesFile != "" {
		cfg.CategoriesFile = categoriesFile
	}

	logger = newLogger(cfg.Logging)

	logger.Debug("configuration loaded",
		"categories_file", cfg.CategoriesFile,
		"scorer_host", cfg.Scorer.Host,
		"database", cfg.Database.Name,
	)

	return nil
}

// newLogger builds the process logger from logging config. --verbose
// forces debug regardless of the configured level.
func newLogger(lc config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newPrinter() *output.Printer {
	return output.NewPrinter(cfg.Output.Colors)
}

// loadCatalog reads the categories file the config points at.
func loadCatalog() (*config.Catalog, error) {
	catalog, err := config.LoadCatalog(cfg.CategoriesFile)
	if err != nil {
		return nil, &output.CLIError{
			Summary:    "failed loading categories",
			Detail:     err.Error(),
			Suggestion: "Check the path given by --categories or the categories_file config key",
		}
	}

	return catalog, nil
}
