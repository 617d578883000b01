// Package telemetry exposes Prometheus instrumentation for the sync engine.
//
// Metrics hang off a private registry so tests can build isolated instances
// without tripping duplicate-registration panics in the global one.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the engine reports to.
type Metrics struct {
	registry *prometheus.Registry

	fetchAttempts  *prometheus.CounterVec
	fetchFailures  *prometheus.CounterVec
	retryAttempts  *prometheus.CounterVec
	retryExhausted *prometheus.CounterVec
	syncRuns       *prometheus.CounterVec
	recordsSynced  prometheus.Counter
	syncDuration   prometheus.Histogram
}

// New builds a Metrics instance backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		fetchAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admetrics_fetch_attempts_total",
			Help: "Individual fetch attempts per platform, retries included.",
		}, []string{"platform"}),
		fetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admetrics_fetch_failures_total",
			Help: "Failed fetch attempts per platform, by failure kind.",
		}, []string{"platform", "kind"}),
		retryAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admetrics_retry_attempts_total",
			Help: "Backoff retries per operation.",
		}, []string{"op"}),
		retryExhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admetrics_retries_exhausted_total",
			Help: "Operations that failed after the full retry budget.",
		}, []string{"op"}),
		syncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admetrics_sync_runs_total",
			Help: "Completed sync runs by outcome.",
		}, []string{"outcome"}),
		recordsSynced: factory.NewCounter(prometheus.CounterOpts{
			Name: "admetrics_records_synced_total",
			Help: "Campaign records stored by successful sync runs.",
		}),
		syncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "admetrics_sync_duration_seconds",
			Help:    "Wall-clock duration of sync runs.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

// Handler serves the metrics in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// FetchAttempt counts one fetch attempt against a platform API.
func (m *Metrics) FetchAttempt(platform string) {
	m.fetchAttempts.WithLabelValues(platform).Inc()
}

// FetchFailure counts one failed fetch attempt.
func (m *Metrics) FetchFailure(platform string, transient bool) {
	kind := "permanent"
	if transient {
		kind = "transient"
	}
	m.fetchFailures.WithLabelValues(platform, kind).Inc()
}

// SyncRun records the outcome of a completed sync run.
func (m *Metrics) SyncRun(outcome string, records int, elapsed time.Duration) {
	m.syncRuns.WithLabelValues(outcome).Inc()
	m.recordsSynced.Add(float64(records))
	m.syncDuration.Observe(elapsed.Seconds())
}

// RetryAttempt implements the retry observer callback.
func (m *Metrics) RetryAttempt(op string, attempt int, delay time.Duration, err error) {
	m.retryAttempts.WithLabelValues(op).Inc()
}

// RetriesExhausted implements the retry observer callback.
func (m *Metrics) RetriesExhausted(op string, attempts int, err error) {
	m.retryExhausted.WithLabelValues(op).Inc()
}
