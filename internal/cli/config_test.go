package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	home := setupCLITest(t)
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized successfully")
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, _, err = runCLI(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	home := setupCLITest(t)
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "config", "init", "--project")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized at")
	assert.Contains(t, stdout, "Created .gitignore")

	assert.FileExists(t, filepath.Join(config.ProjectDirName, "config.yaml"))
	assert.FileExists(t, filepath.Join(config.ProjectDirName, ".gitignore"))
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	_, _, err = runCLI(t, "config", "init", "--project", "--global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestConfigSetGet_RoundTrip(t *testing.T) {
	home := setupCLITest(t)
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "config", "set", "ui.page_size", "50")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set ui.page_size in "+filepath.Join(home, "config.yaml"))

	stdout, _, err = runCLI(t, "config", "get", "ui.page_size")
	require.NoError(t, err)
	assert.Equal(t, "50", strings.TrimSpace(stdout))
}

func TestConfigSet_WritesProjectOverlay(t *testing.T) {
	home := setupCLITest(t)
	t.Chdir(t.TempDir())

	_, _, err := runCLI(t, "config", "init", "--project")
	require.NoError(t, err)

	_, _, err = runCLI(t, "config", "set", "output.default_format", "ndjson")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	stdout, _, err := runCLI(t, "config", "get", "output.default_format")
	require.NoError(t, err)
	assert.Equal(t, "ndjson", strings.TrimSpace(stdout))

	_, _, err = runCLI(t, "config", "set", "--global", "ui.locale", "en")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}

func TestConfigSet_DoesNotPersistEnvironment(t *testing.T) {
	home := setupCLITest(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIToken, "env-token-secret")

	_, _, err := runCLI(t, "config", "set", "ui.page_size", "30")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "env-token-secret")
}

func TestConfigSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"page size zero", []string{"config", "set", "ui.page_size", "0"}, "page size must be between"},
		{"bad url", []string{"config", "set", "api.base_url", "localhost:5100"}, "absolute http(s) URL"},
		{"bad format", []string{"config", "set", "output.default_format", "xml"}, "is not one of"},
		{"bad timeout", []string{"config", "set", "api.timeout", "-1s"}, "positive duration"},
		{"unknown key", []string{"config", "set", "api.password", "x"}, "unknown configuration key"},
		{"missing value", []string{"config", "set", "ui.page_size"}, "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupCLITest(t)
			t.Chdir(t.TempDir())

			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, filepath.Join(home, "config.yaml"))
		})
	}
}

func TestConfigGet_MasksToken(t *testing.T) {
	setupCLITest(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIToken, "abcdefghijkl")

	stdout, _, err := runCLI(t, "config", "get", "api.token")
	require.NoError(t, err)
	assert.Equal(t, "********ijkl", strings.TrimSpace(stdout))

	stdout, _, err = runCLI(t, "config", "get", "api.token", "--reveal")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijkl", strings.TrimSpace(stdout))
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIToken, "short")

	stdout, _, err := runCLI(t, "config", "list")
	require.NoError(t, err)

	for _, key := range config.Keys() {
		assert.Contains(t, stdout, key)
	}
	assert.Contains(t, stdout, "********")
	assert.NotContains(t, stdout, "short")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIToken, "abcdefghijkl")

	stdout, _, err := runCLI(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
	assert.NotContains(t, stdout, "Configuration details:")

	stdout, _, err = runCLI(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration details:")
	assert.Contains(t, stdout, "API token: ********ijkl")
	assert.NotContains(t, stdout, "abcdefghijkl")
}

func TestConfigValidate_Invalid(t *testing.T) {
	setupCLITest(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("api:\n  base_url: ftp://wattson\nui:\n  page_size: 0\n"), 0o600))

	_, _, err := runCLI(t, "config", "validate", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "api.base_url")
	assert.Contains(t, err.Error(), "ui.page_size")
}

func TestConfigFile_Malformed(t *testing.T) {
	setupCLITest(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui: [unterminated\n"), 0o600))

	_, _, err := runCLI(t, "config", "list", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
