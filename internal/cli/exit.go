package cli

import (
	"errors"
	"fmt"

	"github.com/rshade/wattsonctl/internal/api"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitFetch   = 2
)

// ExitError carries the exit code main should use. A failed fetch is
// returned as an ExitError with ExitFetch once its error block has been
// printed, so main does not print it a second time.
type ExitError struct {
	ExitCode int
	Err      error
	Reported bool // the message was already written to stderr
}

// Error implements error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code: 0 for nil, the code of an
// ExitError, ExitFetch for any other fetch failure and ExitFailure
// otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	if errors.Is(err, api.ErrFetch) {
		return ExitFetch
	}
	return ExitFailure
}

// IsReported reports whether err's message was already shown to the user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}
