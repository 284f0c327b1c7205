package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/wattsonctl/internal/logging"
)

// ProjectDirName is the project-local configuration directory.
const ProjectDirName = ".wattsonctl"

// resolvedProjectDir is set once per CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored project directory, or "".
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .wattsonctl directory.
// It checks, in order:
//  1. WATTSONCTL_PROJECT_DIR
//  2. walking up from startDir to the first directory containing
//     .wattsonctl/config.yaml
//
// The returned path is absolute, or "" when no project is found. Nothing is
// created.
func ResolveProjectDir(ctx context.Context, startDir string) string {
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	home, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		// The global config dir is not a project overlay.
		if candidate != home {
			if _, statErr := os.Stat(filepath.Join(candidate, configFileName)); statErr == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir loads the global config and shallow-merges the project
// overlay on top. Environment overrides are applied last. An empty
// projectDir behaves like New.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return cfg
	}
	merged.ApplyEnv()
	return merged
}

// toAbsProjectDir makes dir absolute and appends .wattsonctl unless it is
// already there.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
