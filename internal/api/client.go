// Package api is the read-only HTTP client for the settlement backend.
//
// Each collection is fetched in full with a single GET; there is no server
// side paging or filtering. Failures are reported as *FetchError.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/logging"
	"github.com/rshade/wattsonctl/internal/metrics"
	"github.com/rshade/wattsonctl/pkg/version"
)

const (
	// DefaultBaseURL is where a locally running backend listens.
	DefaultBaseURL = "http://localhost:5100"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	maxErrorBodyBytes = 512
	maxBodyBytes      = 64 << 20
)

// Fetcher is the read contract the list pages depend on.
type Fetcher interface {
	FetchSettlementDocuments(ctx context.Context) ([]billing.SettlementDocument, error)
	FetchMeteringPoints(ctx context.Context) ([]billing.MeteringPoint, error)
	FetchCustomers(ctx context.Context) ([]billing.Customer, error)
	FetchSupplies(ctx context.Context) ([]billing.Supply, error)
}

// Client implements Fetcher over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
	userAgent  string
	recorder   *metrics.Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithToken sends a static bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithRecorder records fetch metrics.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient creates a client for the backend at baseURL. An empty baseURL
// uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "wattsonctl/" + version.GetVersion(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchSettlementDocuments reads every settlement document.
func (c *Client) FetchSettlementDocuments(ctx context.Context) ([]billing.SettlementDocument, error) {
	return fetchCollection[billing.SettlementDocument](ctx, c, billing.CollectionSettlements)
}

// FetchMeteringPoints reads every metering point.
func (c *Client) FetchMeteringPoints(ctx context.Context) ([]billing.MeteringPoint, error) {
	return fetchCollection[billing.MeteringPoint](ctx, c, billing.CollectionMeteringPoints)
}

// FetchCustomers reads every customer. Customers violating the kind or
// identifier invariants are kept and logged.
func (c *Client) FetchCustomers(ctx context.Context) ([]billing.Customer, error) {
	customers, err := fetchCollection[billing.Customer](ctx, c, billing.CollectionCustomers)
	if err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	for _, cust := range customers {
		if vErr := cust.Validate(); vErr != nil {
			log.Warn().Str("component", "api").Err(vErr).Msg("customer violates invariants")
		}
	}
	return customers, nil
}

// FetchSupplies reads every supply delivery.
func (c *Client) FetchSupplies(ctx context.Context) ([]billing.Supply, error) {
	return fetchCollection[billing.Supply](ctx, c, billing.CollectionSupplies)
}

// fetchCollection GETs a collection endpoint, records metrics and checks
// identifier uniqueness.
func fetchCollection[T billing.Entity](ctx context.Context, c *Client, coll billing.Collection) ([]T, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	items, err := getCollection[T](ctx, c, coll)
	elapsed := time.Since(start)
	c.recorder.ObserveFetch(string(coll), elapsed, len(items), err)

	if err != nil {
		log.Error().Str("component", "api").Str("collection", string(coll)).
			Dur("elapsed", elapsed).Err(err).Msg("fetch failed")
		return nil, err
	}

	if dupErr := billing.CheckUnique(items); dupErr != nil {
		log.Warn().Str("component", "api").Str("collection", string(coll)).Err(dupErr).
			Msg("collection contains duplicate identifiers")
	}
	log.Debug().Str("component", "api").Str("collection", string(coll)).
		Int("rows", len(items)).Dur("elapsed", elapsed).Msg("fetch complete")
	return items, nil
}

// getCollection performs the request and decodes the JSON array body. A
// null body decodes to an empty, non-nil slice.
func getCollection[T any](ctx context.Context, c *Client, coll billing.Collection) ([]T, error) {
	endpoint := c.baseURL.JoinPath(coll.APIPath())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &FetchError{Collection: coll, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(logging.TraceIDHeader, logging.GetOrGenerateTraceID(ctx))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Collection: coll, Message: transportMessage(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Collection: coll,
			StatusCode: resp.StatusCode,
			Message:    errorBodyMessage(resp),
		}
	}

	var items []T
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&items); err != nil {
		return nil, &FetchError{
			Collection: coll,
			Message:    "invalid response body: " + err.Error(),
			Err:        err,
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// transportMessage unwraps *url.Error so the message reads like the cause.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// problemDetails is the RFC 7807 body the backend returns on errors.
type problemDetails struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// errorBodyMessage extracts a readable message from an error response,
// preferring problem details and falling back to a body excerpt.
func errorBodyMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	text := strings.TrimSpace(string(body))

	var pd problemDetails
	if json.Unmarshal(body, &pd) == nil {
		switch {
		case pd.Title != "" && pd.Detail != "":
			return pd.Title + ": " + pd.Detail
		case pd.Detail != "":
			return pd.Detail
		case pd.Title != "":
			return pd.Title
		}
	}
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
