package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/cli"
)

func TestExitCode(t *testing.T) {
	fetchErr := &api.FetchError{Collection: billing.CollectionCustomers, StatusCode: 500, Message: "boom"}

	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantReported bool
	}{
		{"nil", nil, cli.ExitOK, false},
		{"plain error", errors.New("bad flag"), cli.ExitFailure, false},
		{"fetch error", fetchErr, cli.ExitFetch, false},
		{"wrapped fetch error", fmt.Errorf("overview: %w", fetchErr), cli.ExitFetch, false},
		{
			"reported exit error",
			&cli.ExitError{ExitCode: cli.ExitFetch, Err: fetchErr, Reported: true},
			cli.ExitFetch, true,
		},
		{"custom code", &cli.ExitError{ExitCode: 7}, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, cli.ExitCode(tt.err))
			assert.Equal(t, tt.wantReported, cli.IsReported(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	inner := errors.New("boom")
	err := &cli.ExitError{ExitCode: cli.ExitFailure, Err: inner}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, "exit status 3", (&cli.ExitError{ExitCode: 3}).Error())
}
