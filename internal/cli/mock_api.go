package cli

import (
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/mockapi"
)

type mockAPIParams struct {
	addr     string
	fixtures string
	version  string
	latency  time.Duration
	fail     []string
}

func newMockAPICmd() *cobra.Command {
	var params mockAPIParams

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve fixture data on the backend's collection endpoints",
		Long: `Starts a small HTTP server that answers the four collection endpoints
from a YAML fixture file, or from built-in sample data. Use it for local
demos of the console without a running settlement backend.

--fail makes a collection answer with an error, as collection[=status].`,
		Example: `  wattsonctl mock-api --addr :5100
  wattsonctl mock-api --fixtures demo.yaml --latency 800ms
  wattsonctl mock-api --fail customers=503`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMockAPI(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.addr, "addr", "127.0.0.1:5100", "listen address")
	cmd.Flags().StringVar(&params.fixtures, "fixtures", "", "YAML fixture file (default: built-in sample data)")
	cmd.Flags().StringVar(&params.version, "backend-version", mockapi.DefaultBackendVersion,
		"version reported on /health")
	cmd.Flags().DurationVar(&params.latency, "latency", 0, "delay added to every collection response")
	cmd.Flags().StringSliceVar(&params.fail, "fail", nil, "collection[=status] to answer with an error")

	return cmd
}

func runMockAPI(cmd *cobra.Command, params mockAPIParams) error {
	fx := mockapi.SampleFixtures()
	if params.fixtures != "" {
		loaded, err := mockapi.LoadFixtures(params.fixtures)
		if err != nil {
			return err
		}
		fx = loaded
	}

	opts := []mockapi.Option{
		mockapi.WithLatency(params.latency),
		mockapi.WithBackendVersion(params.version),
	}
	for _, spec := range params.fail {
		opt, err := parseFailure(spec)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Serving %d settlement documents, %d metering points, %d customers and %d supplies on http://%s\n",
		len(fx.SettlementDocuments), len(fx.MeteringPoints), len(fx.Customers), len(fx.Supplies), params.addr)
	return mockapi.NewServer(fx, opts...).ListenAndServe(ctx, params.addr)
}

// parseFailure parses collection[=status]; the status defaults to 500.
func parseFailure(spec string) (mockapi.Option, error) {
	name, statusText, hasStatus := strings.Cut(spec, "=")
	coll, err := billing.ParseCollection(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("invalid --fail %q: %w", spec, err)
	}
	status := http.StatusInternalServerError
	if hasStatus {
		status, err = strconv.Atoi(strings.TrimSpace(statusText))
		if err != nil || status < 400 || status > 599 {
			return nil, fmt.Errorf("invalid --fail %q: status must be 400-599", spec)
		}
	}
	return mockapi.WithFailure(coll, status, "forced failure"), nil
}

