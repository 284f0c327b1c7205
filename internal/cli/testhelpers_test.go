package cli_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/rshade/wattsonctl/internal/cli"
	"github.com/rshade/wattsonctl/internal/config"
	"github.com/rshade/wattsonctl/internal/mockapi"
)

// Sample fixture sizes the assertions below rely on.
const (
	sampleSettlements = 30
	sampleCorrections = 6
	sampleCustomers   = 12
	sampleCompanies   = 4
	sampleSupplies    = 24
)

// setupCLITest isolates the global config and home directory of one test.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")
	t.Setenv(config.EnvLogLevel, "error")
	config.ResetGlobalConfigForTest()
	config.SetResolvedProjectDir("")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// startBackend serves fx (sample data when nil) and returns its URL.
func startBackend(t *testing.T, fx *mockapi.Fixtures, opts ...mockapi.Option) (string, *mockapi.Server) {
	t.Helper()
	if fx == nil {
		fx = mockapi.SampleFixtures()
	}
	srv := mockapi.NewServer(fx, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL, srv
}

// runCLI executes the root command with args and returns stdout and stderr.
// The cached global config is dropped first, as in a fresh process.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()
	config.SetResolvedProjectDir("")
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
