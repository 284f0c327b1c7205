// Package metrics records API fetch metrics with Prometheus collectors.
//
// wattsonctl is a short-lived client, so instead of serving /metrics the
// registry can be written to a node-exporter textfile when the process exits.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "wattsonctl_"

	resultSuccess = "success"
	resultError   = "error"
)

// Recorder owns a private registry and the fetch collectors. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	rowsLoaded   *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "api_fetch_total",
				Help: "Collection fetches by collection and result",
			},
			[]string{"collection", "result"},
		),
		fetchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "api_fetch_latency_seconds",
				Help:    "Collection fetch latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"collection", "result"},
		),
		rowsLoaded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "rows_loaded",
				Help: "Rows returned by the most recent successful fetch",
			},
			[]string{"collection"},
		),
	}
	r.registry.MustRegister(r.fetchTotal, r.fetchLatency, r.rowsLoaded)
	return r
}

// ObserveFetch records one fetch of collection.
func (r *Recorder) ObserveFetch(collection string, elapsed time.Duration, rows int, err error) {
	if r == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	r.fetchTotal.WithLabelValues(collection, result).Inc()
	r.fetchLatency.WithLabelValues(collection, result).Observe(elapsed.Seconds())
	if err == nil {
		r.rowsLoaded.WithLabelValues(collection).Set(float64(rows))
	}
}

// Registry exposes the registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the registry in Prometheus text format to path. It is
// a no-op when path is empty.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
