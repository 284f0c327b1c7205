package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/wattsonctl/internal/logging"
)

// SupportedBackendVersions is the range of backend versions whose collection
// endpoints this client understands.
const SupportedBackendVersions = ">= 1.0.0, < 2.0.0"

const healthPath = "/health"

// ErrIncompatibleBackend is returned when the backend version is outside
// SupportedBackendVersions or cannot be read.
var ErrIncompatibleBackend = errors.New("incompatible backend version")

// Health is the body of the backend's health endpoint.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health reads the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	endpoint := c.baseURL.JoinPath(healthPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(logging.TraceIDHeader, logging.GetOrGenerateTraceID(ctx))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking backend health: %s", transportMessage(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checking backend health: HTTP %d: %s", resp.StatusCode, errorBodyMessage(resp))
	}

	var h Health
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&h); err != nil {
		return nil, fmt.Errorf("decoding health response: %w", err)
	}
	return &h, nil
}

// CheckCompatible reports whether a backend at version v is supported.
func CheckCompatible(v string) error {
	if v == "" {
		return fmt.Errorf("%w: backend did not report a version", ErrIncompatibleBackend)
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrIncompatibleBackend, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedBackendVersions)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}
	if !constraint.Check(parsed) {
		return fmt.Errorf("%w: %s is outside %s", ErrIncompatibleBackend, parsed, SupportedBackendVersions)
	}
	return nil
}
