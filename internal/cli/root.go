package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/config"
	"github.com/rshade/wattsonctl/internal/metrics"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the wattsonctl CLI.
// It wires up configuration, logging, tracing and metrics, and registers
// the collection, console, export and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var sess *session

	// finish writes the metrics textfile and closes the log file. It runs
	// once per invocation.
	finish := func(cmd *cobra.Command) error {
		if sess == nil {
			return nil
		}
		done := sess
		sess = nil
		if err := done.recorder.WriteTextfile(done.cfg.Metrics.Textfile); err != nil {
			logger.Warn().Ctx(cmd.Context()).Err(err).Msg("could not write metrics textfile")
		}
		return cleanupLogging(done.logResult)
	}

	cmd := &cobra.Command{
		Use:   "wattsonctl",
		Short: "Console for the WattsOn settlement backend",
		Long: `wattsonctl browses the settlement documents, metering points, customers
and supplies of a WattsOn settlement backend.

Run without arguments in a terminal to open the interactive console.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			apiURL, _ := cmd.Flags().GetString("api-url")
			sess = &session{
				cfg:      cfg,
				recorder: metrics.NewRecorder(),
				apiURL:   apiURL,
			}
			sess.logResult = setupLogging(cmd, cfg)
			cmd.SetContext(withSession(cmd.Context(), sess))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return finish(cmd)
		},
		RunE: runBrowse,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("api-url", "", "settlement backend base URL (overrides config and "+
		config.EnvAPIURL+")")
	cmd.PersistentFlags().String("config", "", "configuration file (default ~/.wattsonctl/config.yaml)")

	for _, coll := range billing.AllCollections {
		cmd.AddCommand(newCollectionCmd(coll))
	}
	cmd.AddCommand(
		newBrowseCmd(), newExportCmd(), newOverviewCmd(),
		newMockAPICmd(), newConfigCmd(), newVersionCmd(),
	)
	finishOnError(cmd, finish)

	return cmd
}

// finishOnError wraps every RunE of the tree so a failing command still runs
// finish; cobra skips PersistentPostRunE after an error.
func finishOnError(c *cobra.Command, finish func(*cobra.Command) error) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				_ = finish(cmd)
			}
			return err
		}
	}
	for _, sub := range c.Commands() {
		finishOnError(sub, finish)
	}
}

// loadConfig resolves the configuration for this invocation: an explicit
// --config file, or the global config with the project overlay merged in.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg.ApplyEnv()
		config.SetGlobalConfig(cfg)
		return cfg, nil
	}

	if config.GetResolvedProjectDir() == "" {
		if wd, err := os.Getwd(); err == nil {
			config.SetResolvedProjectDir(config.ResolveProjectDir(cmd.Context(), wd))
		}
	}
	cfg := config.GetGlobalConfig()
	if cfg == nil {
		return nil, errors.New("configuration unavailable")
	}
	return cfg, nil
}

const rootCmdExample = `  # Open the console
  wattsonctl

  # Open the console on the customers page
  wattsonctl browse /customers

  # List invoiced settlement documents as JSON
  wattsonctl settlements --status faktureret --output json

  # Show page 2 of the metering points, sorted by GSRN
  wattsonctl metering-points --page 2 --sort gsrn

  # Export active supplies to a workbook
  wattsonctl export supplies --active --out leverancer.xlsx

  # Count everything in the backend
  wattsonctl overview

  # Serve sample data for a local demo
  wattsonctl mock-api --addr :5100`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
