package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/mockapi"
)

func TestVersion(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wattsonctl dev (commit unknown")
	assert.NotContains(t, stdout, "Backend")
}

func TestVersion_Check(t *testing.T) {
	tests := []struct {
		name           string
		backendVersion string
		wantErr        bool
	}{
		{name: "supported", backendVersion: mockapi.DefaultBackendVersion},
		{name: "too new", backendVersion: "2.1.0", wantErr: true},
		{name: "not reported", backendVersion: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			url, _ := startBackend(t, nil, mockapi.WithBackendVersion(tt.backendVersion))

			stdout, _, err := runCLI(t, "version", "--check", "--api-url", url)
			if tt.wantErr {
				require.ErrorIs(t, err, api.ErrIncompatibleBackend)
				assert.Contains(t, err.Error(), url)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, stdout, "version "+tt.backendVersion+", status ok")
		})
	}
}

func TestVersion_CheckUnreachable(t *testing.T) {
	setupCLITest(t)

	_, _, err := runCLI(t, "version", "--check", "--api-url", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking backend health")
}
