package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file, the project
overlay and environment overrides.

This includes:
- api.base_url is an absolute http or https URL
- api.timeout is positive
- ui.page_size is between 1 and 500
- output.default_format is table, json or ndjson
- logging.level is a known level`,
		Example: `  # Validate current configuration
  wattsonctl config validate

  # Validate and show detailed information
  wattsonctl config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := sessionFrom(cmd).cfg

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project overlay: %s\n", dir)
	}
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %s\n", cfg.API.Timeout)
	if cfg.API.Token != "" {
		cmd.Printf("  API token: %s\n", maskSecret(cfg.API.Token))
	}
	cmd.Printf("  Page size: %d\n", cfg.UI.PageSize)
	cmd.Printf("  Locale: %s\n", cfg.UI.Locale)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	if cfg.Metrics.Textfile != "" {
		cmd.Printf("  Metrics textfile: %s\n", cfg.Metrics.Textfile)
	}
}
