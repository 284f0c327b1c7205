package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version, and optionally check the backend",
		Long: `Prints the wattsonctl build. With --check it also asks the backend for
its version and verifies it is within ` + api.SupportedBackendVersions + `.`,
		Example: `  wattsonctl version
  wattsonctl version --check --api-url https://wattson.example.dk`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("wattsonctl %s (commit %s, built %s)\n",
				version.GetVersion(), version.GetGitCommit(), version.GetBuildDate())
			if !check {
				return nil
			}
			return checkBackend(cmd)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check that the backend version is supported")
	return cmd
}

func checkBackend(cmd *cobra.Command) error {
	ctx := cmd.Context()
	client, err := sessionFrom(cmd).newClient()
	if err != nil {
		return err
	}

	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	if err = api.CheckCompatible(health.Version); err != nil {
		logger.Warn().Ctx(ctx).Str("backend_version", health.Version).Err(err).Msg("backend check failed")
		return fmt.Errorf("backend at %s: %w", client.BaseURL(), err)
	}

	cmd.Printf("Backend %s: version %s, status %s\n", client.BaseURL(), health.Version, health.Status)
	return nil
}
