package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/config"
)

// isolate points WATTSONCTL_HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefault(t *testing.T) {
	home := isolate(t)

	cfg := config.Default()
	assert.Equal(t, "http://localhost:5100", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.UI.PageSize)
	assert.Equal(t, "da", cfg.UI.Locale)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "logs", "wattsonctl.log"), cfg.Logging.File)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.NoError(t, cfg.Validate())
}

func TestNew_ReadsFileAndEnv(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), `
api:
  base_url: https://wattson.example.dk
  timeout: 5s
ui:
  page_size: 50
  locale: en
`)
	t.Setenv(config.EnvAPIToken, "from-env")
	t.Setenv(config.EnvLogLevel, "debug")

	cfg := config.New()
	assert.Equal(t, "https://wattson.example.dk", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, 50, cfg.UI.PageSize)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
}

func TestNew_EnvURLWins(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "api:\n  base_url: http://file:1\n")
	t.Setenv(config.EnvAPIURL, "http://env:2")

	assert.Equal(t, "http://env:2", config.New().API.BaseURL)
}

func TestNew_MalformedFileUsesDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "api: [unclosed\n")

	cfg := config.New()
	assert.Equal(t, "http://localhost:5100", cfg.API.BaseURL)
}

func TestLoad(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(dir, "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.UI.PageSize)
		assert.Equal(t, filepath.Join(dir, "none.yaml"), cfg.ConfigPath())
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "ui: {page_size: [")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.SetConfigPath(path)
	require.NoError(t, cfg.Set("api.timeout", "45s"))
	require.NoError(t, cfg.Set("output.default_format", "json"))
	require.NoError(t, cfg.Save())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, loaded.API.Timeout)
	assert.Equal(t, config.FormatJSON, loaded.Output.DefaultFormat)
}

func TestSave_NoPath(t *testing.T) {
	cfg := &config.Config{}
	assert.Error(t, cfg.Save())
}

func TestGetSet(t *testing.T) {
	isolate(t)
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr error
	}{
		{key: "api.base_url", value: "https://x.example.dk", want: "https://x.example.dk"},
		{key: "api.base_url", value: "not a url", wantErr: config.ErrInvalidValue},
		{key: "api.token", value: "abc", want: "abc"},
		{key: "api.timeout", value: "1m", want: "1m0s"},
		{key: "api.timeout", value: "-1s", wantErr: config.ErrInvalidValue},
		{key: "ui.page_size", value: "25", want: "25"},
		{key: "ui.page_size", value: "0", wantErr: config.ErrInvalidValue},
		{key: "ui.page_size", value: "many", wantErr: config.ErrInvalidValue},
		{key: "UI.Locale", value: "en", want: "en"},
		{key: "ui.locale", value: "fr", wantErr: config.ErrInvalidValue},
		{key: "output.default_format", value: "ndjson", want: "ndjson"},
		{key: "output.default_format", value: "csv", wantErr: config.ErrInvalidValue},
		{key: "logging.level", value: "warn", want: "warn"},
		{key: "logging.level", value: "loud", wantErr: config.ErrInvalidValue},
		{key: "metrics.textfile", value: "/tmp/w.prom", want: "/tmp/w.prom"},
		{key: "nope.key", value: "x", wantErr: config.ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := config.Default()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.UI.PageSize = 0
	cfg.Output.DefaultFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
	assert.Contains(t, err.Error(), "ui.page_size")
	assert.Contains(t, err.Error(), "output.default_format")
}

func TestKeysAndSecrets(t *testing.T) {
	keys := config.Keys()
	assert.Contains(t, keys, "api.base_url")
	assert.Contains(t, keys, "metrics.textfile")
	assert.True(t, config.IsSecret("api.token"))
	assert.False(t, config.IsSecret("api.base_url"))
	assert.False(t, config.IsSecret("unknown"))
}

func TestShallowMergeYAML(t *testing.T) {
	isolate(t)
	target := config.Default()
	target.API.Token = "keep-me"
	overlay := filepath.Join(t.TempDir(), "overlay.yaml")
	writeFile(t, overlay, `
ui:
  page_size: 10
unknown_section:
  whatever: true
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 10, target.UI.PageSize)
	// The ui section is replaced wholesale, so locale is reset.
	assert.Empty(t, target.UI.Locale)
	assert.Equal(t, "keep-me", target.API.Token)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	assert.Error(t, config.ShallowMergeYAML(nil, "x"))
	assert.Error(t, config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml")))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "ui:\n  page_size: lots\n")
	err := config.ShallowMergeYAML(config.Default(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ui"`)
}

func TestShallowMergeYAML_Empty(t *testing.T) {
	isolate(t)
	target := config.Default()
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	writeFile(t, empty, "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, empty))
	assert.Equal(t, config.Default().UI, target.UI)
}

func TestResolveProjectDir(t *testing.T) {
	isolate(t)

	t.Run("env override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(config.EnvProjectDir, dir)
		assert.Equal(t, filepath.Join(dir, ".wattsonctl"), config.ResolveProjectDir(context.Background(), "/ignored"))
	})

	t.Run("walk up", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".wattsonctl", "config.yaml"), "ui:\n  page_size: 5\n")
		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o750))

		assert.Equal(t, filepath.Join(root, ".wattsonctl"), config.ResolveProjectDir(context.Background(), sub))
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, config.ResolveProjectDir(context.Background(), t.TempDir()))
	})
}

func TestNewWithProjectDir(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "api:\n  base_url: http://global:1\n")

	project := filepath.Join(t.TempDir(), ".wattsonctl")
	writeFile(t, filepath.Join(project, "config.yaml"), "output:\n  default_format: ndjson\n")

	cfg := config.NewWithProjectDir(context.Background(), project)
	assert.Equal(t, "http://global:1", cfg.API.BaseURL)
	assert.Equal(t, config.FormatNDJSON, cfg.Output.DefaultFormat)

	t.Setenv(config.EnvAPIURL, "http://env:3")
	cfg = config.NewWithProjectDir(context.Background(), project)
	assert.Equal(t, "http://env:3", cfg.API.BaseURL)

	assert.Equal(t, "http://env:3", config.NewWithProjectDir(context.Background(), "").API.BaseURL)
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)

	first := config.GetGlobalConfig()
	require.NotNil(t, first)
	assert.Same(t, first, config.GetGlobalConfig())

	custom := config.Default()
	custom.UI.PageSize = 7
	config.SetGlobalConfig(custom)
	assert.Equal(t, 7, config.GetGlobalConfig().UI.PageSize)
	assert.Equal(t, custom.Logging, config.GetLoggingConfig())

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, custom, config.GetGlobalConfig())
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json", File: "/tmp/x.log"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, "/tmp/x.log", got.File)
	assert.Equal(t, "debug", got.Level)

	lc.File = ""
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)
}

func TestEnsureGitignore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".wattsonctl")

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("custom\n"), 0o600))
	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
	data, err = os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}

func TestEnsureLogDir(t *testing.T) {
	require.NoError(t, config.EnsureLogDir(""))
	file := filepath.Join(t.TempDir(), "deep", "logs", "w.log")
	require.NoError(t, config.EnsureLogDir(file))
	_, err := os.Stat(filepath.Dir(file))
	assert.NoError(t, err)
}
