// Package mockapi serves fixture data on the settlement backend's collection
// endpoints. It backs `wattsonctl mock-api` for local demos and is the fake
// backend in client and CLI tests.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// DefaultBackendVersion is the version the health endpoint reports.
const DefaultBackendVersion = "1.4.0"

// Failure makes a collection endpoint answer with an error.
type Failure struct {
	Status int
	Detail string
}

// Server serves Fixtures over HTTP.
type Server struct {
	mu       sync.RWMutex
	fixtures *Fixtures
	version  string
	latency  time.Duration
	failures map[billing.Collection]Failure
	hits     map[billing.Collection]int
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every collection response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithBackendVersion sets the version reported on /health.
func WithBackendVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithFailure makes coll fail with the given status and problem detail.
func WithFailure(coll billing.Collection, status int, detail string) Option {
	return func(s *Server) {
		s.failures[coll] = Failure{Status: status, Detail: detail}
	}
}

// NewServer creates a server for fx. A nil fx serves empty collections.
func NewServer(fx *Fixtures, opts ...Option) *Server {
	if fx == nil {
		fx = &Fixtures{}
	}
	s := &Server{
		fixtures: fx,
		version:  DefaultBackendVersion,
		failures: map[billing.Collection]Failure{},
		hits:     map[billing.Collection]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hits returns how many collection requests coll has received.
func (s *Server) Hits(coll billing.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[coll]
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	for _, coll := range billing.AllCollections {
		r.HandleFunc(coll.APIPath(), s.handleList(coll)).Methods(http.MethodGet)
		r.HandleFunc(coll.APIPath()+"/{id}", s.handleGet(coll)).Methods(http.MethodGet)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no such resource")
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd // Conservative header timeout.
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("component", "mockapi").Str("addr", addr).Msg("mock backend listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock backend: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down mock backend: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleList(coll billing.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[coll]++
		failure, failing := s.failures[coll]
		s.mu.Unlock()

		if !s.wait(r.Context()) {
			return
		}
		if failing {
			writeProblem(w, failure.Status, http.StatusText(failure.Status), failure.Detail)
			return
		}

		s.mu.RLock()
		defer s.mu.RUnlock()
		writeJSON(w, http.StatusOK, s.collection(coll))
	}
}

func (s *Server) handleGet(coll billing.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "id must be a UUID")
			return
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		if item, ok := s.find(coll, id); ok {
			writeJSON(w, http.StatusOK, item)
			return
		}
		writeProblem(w, http.StatusNotFound, "Not Found", fmt.Sprintf("%s %s not found", coll, id))
	}
}

// wait applies the configured latency; it returns false when the client
// went away first.
func (s *Server) wait(ctx context.Context) bool {
	if s.latency <= 0 {
		return true
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Server) collection(coll billing.Collection) any {
	switch coll {
	case billing.CollectionSettlements:
		return nonNil(s.fixtures.SettlementDocuments)
	case billing.CollectionMeteringPoints:
		return nonNil(s.fixtures.MeteringPoints)
	case billing.CollectionCustomers:
		return nonNil(s.fixtures.Customers)
	case billing.CollectionSupplies:
		return nonNil(s.fixtures.Supplies)
	default:
		return []any{}
	}
}

func (s *Server) find(coll billing.Collection, id uuid.UUID) (any, bool) {
	switch coll {
	case billing.CollectionSettlements:
		return findByID(s.fixtures.SettlementDocuments, id)
	case billing.CollectionMeteringPoints:
		return findByID(s.fixtures.MeteringPoints, id)
	case billing.CollectionCustomers:
		return findByID(s.fixtures.Customers, id)
	case billing.CollectionSupplies:
		return findByID(s.fixtures.Supplies, id)
	default:
		return nil, false
	}
}

func findByID[T billing.Entity](items []T, id uuid.UUID) (any, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	return nil, false
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": status,
		"title":  title,
		"detail": detail,
	})
}
