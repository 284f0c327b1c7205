// Package config loads wattsonctl settings from ~/.wattsonctl/config.yaml,
// an optional project-local overlay, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/listing"
)

// Environment variables that override the config file.
const (
	EnvHome       = "WATTSONCTL_HOME"
	EnvProjectDir = "WATTSONCTL_PROJECT_DIR"
	EnvAPIURL     = "WATTSONCTL_API_URL"
	EnvAPIToken   = "WATTSONCTL_API_TOKEN"
	EnvLogLevel   = "WATTSONCTL_LOG_LEVEL"
	EnvLogFormat  = "WATTSONCTL_LOG_FORMAT"
)

const (
	configFileName = "config.yaml"
	maxPageSize    = 500
)

// Output formats accepted by output.default_format and --output.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Config errors.
var (
	ErrUnknownKey   = errors.New("unknown configuration key")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the complete wattsonctl configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`

	configPath string
}

// APIConfig locates the settlement backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig tunes the list pages.
type UIConfig struct {
	PageSize int    `yaml:"page_size"`
	Locale   string `yaml:"locale"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls where and how much is logged.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// MetricsConfig controls the Prometheus textfile written on exit.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	cfg := &Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
			Timeout: api.DefaultTimeout,
		},
		UI: UIConfig{
			PageSize: listing.DefaultPageSize,
			Locale:   format.Danish.Name,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		cfg.Logging.File = filepath.Join(dir, "logs", "wattsonctl.log")
	}
	return cfg
}

// New returns the global configuration: defaults, then ~/.wattsonctl/config.yaml
// if present, then environment overrides. A malformed file is ignored.
func New() *Config {
	cfg := Default()
	if cfg.configPath != "" {
		if loaded, err := Load(cfg.configPath); err == nil {
			cfg = loaded
		}
	}
	cfg.ApplyEnv()
	return cfg
}

// Load reads path on top of the defaults. A missing file yields the defaults.
// Environment overrides are not applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnv applies WATTSONCTL_* environment overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Validate checks every section and joins all problems found.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range fields {
		if f.validate == nil {
			continue
		}
		if err := f.validate(f.get(c)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the value at a dotted key such as "api.base_url".
func (c *Config) Get(key string) (string, error) {
	f, ok := lookupField(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set validates value and stores it at a dotted key.
func (c *Config) Set(key, value string) error {
	f, ok := lookupField(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if f.validate != nil {
		if err := f.validate(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return f.set(c, value)
}

// Keys lists every settable key in display order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	return keys
}

// IsSecret reports whether the value at key should be masked when listed.
func IsSecret(key string) bool {
	f, ok := lookupField(key)
	return ok && f.secret
}

type field struct {
	key      string
	secret   bool
	get      func(*Config) string
	set      func(*Config, string) error
	validate func(string) error
}

func lookupField(key string) (field, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

func setString(dst func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

//nolint:gochecknoglobals // Key table for get/set/validate.
var fields = []field{
	{
		key:      "api.base_url",
		get:      func(c *Config) string { return c.API.BaseURL },
		set:      setString(func(c *Config) *string { return &c.API.BaseURL }),
		validate: validateBaseURL,
	},
	{
		key:    "api.token",
		secret: true,
		get:    func(c *Config) string { return c.API.Token },
		set:    setString(func(c *Config) *string { return &c.API.Token }),
	},
	{
		key: "api.timeout",
		get: func(c *Config) string { return c.API.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidValue, err)
			}
			c.API.Timeout = d
			return nil
		},
		validate: func(v string) error {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("%w: timeout must be a positive duration, got %q", ErrInvalidValue, v)
			}
			return nil
		},
	},
	{
		key: "ui.page_size",
		get: func(c *Config) string { return strconv.Itoa(c.UI.PageSize) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidValue, err)
			}
			c.UI.PageSize = n
			return nil
		},
		validate: func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > maxPageSize {
				return fmt.Errorf("%w: page size must be between 1 and %d, got %q", ErrInvalidValue, maxPageSize, v)
			}
			return nil
		},
	},
	{
		key:      "ui.locale",
		get:      func(c *Config) string { return c.UI.Locale },
		set:      setString(func(c *Config) *string { return &c.UI.Locale }),
		validate: oneOf(format.Danish.Name, format.English.Name),
	},
	{
		key:      "output.default_format",
		get:      func(c *Config) string { return c.Output.DefaultFormat },
		set:      setString(func(c *Config) *string { return &c.Output.DefaultFormat }),
		validate: oneOf(FormatTable, FormatJSON, FormatNDJSON),
	},
	{
		key:      "logging.level",
		get:      func(c *Config) string { return c.Logging.Level },
		set:      setString(func(c *Config) *string { return &c.Logging.Level }),
		validate: oneOf("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"),
	},
	{
		key:      "logging.format",
		get:      func(c *Config) string { return c.Logging.Format },
		set:      setString(func(c *Config) *string { return &c.Logging.Format }),
		validate: oneOf("console", "json", "text"),
	},
	{
		key: "logging.file",
		get: func(c *Config) string { return c.Logging.File },
		set: setString(func(c *Config) *string { return &c.Logging.File }),
	},
	{
		key: "metrics.textfile",
		get: func(c *Config) string { return c.Metrics.Textfile },
		set: setString(func(c *Config) *string { return &c.Metrics.Textfile }),
	},
}

func oneOf(allowed ...string) func(string) error {
	return func(v string) error {
		if slices.Contains(allowed, strings.ToLower(v)) {
			return nil
		}
		return fmt.Errorf("%w: %q is not one of %s", ErrInvalidValue, v, strings.Join(allowed, ", "))
	}
}

func validateBaseURL(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base url must be an absolute http(s) URL, got %q", ErrInvalidValue, v)
	}
	return nil
}
