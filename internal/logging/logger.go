// Package logging provides zerolog-based structured logging with context
// propagation and trace IDs for wattsonctl.
//
// The logger is carried in a context.Context so that every layer (CLI, API
// client, TUI commands) logs with the same fields and trace ID:
//
//	ctx = logger.WithContext(ctx)
//	logging.FromContext(ctx).Info().Msg("fetching customers")
//
// While the TUI owns the terminal, logs must not be written to stderr, so the
// default output is a log file under the config directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output and format names accepted in Config.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"

	FormatJSON    = "json"
	FormatConsole = "console"
	FormatText    = "text"
)

// Config controls how NewLoggerWithPath builds the logger.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // json, console, text
	Output string // stderr, file, discard
	File   string // path when Output is "file"
	Caller bool
}

// LogPathResult is returned by NewLoggerWithPath. It reports where logs
// actually go, which may differ from the request when the file cannot be
// opened.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	mu   sync.Mutex
	file *os.File
}

// Close closes the log file handle, if any.
func (r *LogPathResult) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg, falling back to stderr when a log file
// cannot be opened.
func NewLogger(cfg Config) zerolog.Logger {
	result := NewLoggerWithPath(cfg)
	return result.Logger
}

// NewLoggerWithPath builds a logger from cfg and reports the effective output.
// The caller owns the returned result and must Close it to release the file.
func NewLoggerWithPath(cfg Config) *LogPathResult {
	level := ParseLevel(cfg.Level)
	result := &LogPathResult{}

	var out io.Writer = os.Stderr
	switch strings.ToLower(cfg.Output) {
	case OutputDiscard:
		out = io.Discard
	case OutputFile:
		f, err := openLogFile(cfg.File)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
			break
		}
		out = f
		result.file = f
		result.UsingFile = true
		result.FilePath = cfg.File
	}

	writer := formatWriter(out, cfg.Format, result.UsingFile)
	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()
	return result
}

// formatWriter wraps out in a console writer unless JSON was requested.
// Files never get ANSI colours.
func formatWriter(out io.Writer, format string, toFile bool) io.Writer {
	switch strings.ToLower(format) {
	case FormatConsole, FormatText:
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    toFile,
		}
	default:
		return out
	}
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log output is %q but no file path is configured", OutputFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns a child logger tagged with the given component.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where logs are written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that file logging failed.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}
