package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a directory tree with .wattsonctl/config.yaml, or
// WATTSONCTL_PROJECT_DIR) it writes the project-local overlay; --project
// creates one in the current directory. Otherwise it creates the global
// ~/.wattsonctl/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		global  bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project, creates project-local configuration at
$PROJECT/.wattsonctl/config.yaml with a .gitignore to protect user-specific
data such as API tokens. Use --project to start a project in the current
directory, or --global to force global configuration initialization.`,
		Example: `  # Create global configuration
  wattsonctl config init

  # Create project-local configuration in the current directory
  wattsonctl config init --project

  # Create configuration, overwriting existing
  wattsonctl config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if global && project {
				return errors.New("--global and --project are mutually exclusive")
			}

			projectDir := config.GetResolvedProjectDir()
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving current directory: %w", err)
				}
				projectDir = filepath.Join(wd, config.ProjectDirName)
			}

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")
	cmd.Flags().BoolVar(&project, "project", false, "create project-local configuration in the current directory")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")

	if err := checkExisting(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Create .gitignore (never overwrites existing)
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to protect user-specific data\n")
	}

	return nil
}

// initGlobalConfig creates global config at ~/.wattsonctl/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Default()
	if cfg.ConfigPath() == "" {
		return errors.New("cannot determine the configuration directory")
	}

	if err := checkExisting(cfg.ConfigPath(), force); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}

func checkExisting(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}
