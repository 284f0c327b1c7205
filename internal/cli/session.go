package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/config"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/logging"
	"github.com/rshade/wattsonctl/internal/metrics"
	"github.com/rshade/wattsonctl/internal/tui"
)

type sessionKey struct{}

// session is the per-invocation state set up by the root command.
type session struct {
	cfg       *config.Config
	recorder  *metrics.Recorder
	logResult *logging.LogPathResult
	apiURL    string // --api-url, wins over config and environment
}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session of cmd. Commands executed without the root
// pre-run get one backed by the global config.
func sessionFrom(cmd *cobra.Command) *session {
	if ctx := cmd.Context(); ctx != nil {
		if s, ok := ctx.Value(sessionKey{}).(*session); ok && s != nil {
			return s
		}
	}
	return &session{cfg: config.GetGlobalConfig()}
}

// baseURL returns the effective API base URL.
func (s *session) baseURL() string {
	if s.apiURL != "" {
		return s.apiURL
	}
	return s.cfg.API.BaseURL
}

// newClient builds the API client from the session's config.
func (s *session) newClient() (*api.Client, error) {
	client, err := api.NewClient(s.baseURL(),
		api.WithTimeout(s.cfg.API.Timeout),
		api.WithToken(s.cfg.API.Token),
		api.WithRecorder(s.recorder),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}

func (s *session) formatter() *format.Formatter {
	return format.NewFormatter(format.LookupLocale(s.cfg.UI.Locale))
}

// deps assembles the console's collaborators.
func (s *session) deps(fetcher api.Fetcher, presets tui.Presets) tui.Deps {
	return tui.Deps{
		Fetcher:   fetcher,
		Formatter: s.formatter(),
		PageSize:  s.cfg.UI.PageSize,
		Presets:   presets,
	}
}

// interactive reports whether cmd writes to a terminal the console can own.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return tui.DetectOutputMode(false, f) == tui.OutputModeInteractive
}

// outputWidth is the width used for error blocks on non-interactive output.
func outputWidth(cmd *cobra.Command) int {
	f, _ := cmd.OutOrStdout().(*os.File)
	return tui.TerminalWidth(f, defaultOutputWidth)
}

const defaultOutputWidth = 100
