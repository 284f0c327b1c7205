package api

import (
	"errors"
	"fmt"

	"github.com/rshade/wattsonctl/internal/billing"
)

// ErrFetch matches every *FetchError via errors.Is.
var ErrFetch = errors.New("fetch failed")

// FetchError is the single failure kind of the client: the collection could
// not be read. Message is human-readable and safe to show to the user.
type FetchError struct {
	Collection billing.Collection
	StatusCode int // 0 for transport and decode failures
	Message    string
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d: %s", e.Collection, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetching %s: %s", e.Collection, e.Message)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) true for any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
