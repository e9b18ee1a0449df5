// internal/monitoring/metrics.go
package monitoring

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github-events-pipeline/internal/model"
)

const (
	namespace = "events_pipeline"
	jobName   = "github_events_ingest"
)

// Recorder collects per-run ingestion metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	runs               *prometheus.CounterVec
	rowsFetched        prometheus.Counter
	rowsInserted       prometheus.Counter
	rowsSkipped        *prometheus.CounterVec
	lastRun            *prometheus.GaugeVec
	rateLimitRemaining prometheus.Gauge
}

// NewRecorder creates a Recorder backed by its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of ingestion runs by terminal status",
		}, []string{"status"}),
		rowsFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_fetched_total",
			Help:      "Number of event records fetched from the feed",
		}),
		rowsInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_inserted_total",
			Help:      "Number of events upserted by successful runs",
		}),
		rowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Number of fetched records excluded by normalization",
		}, []string{"reason"}),
		lastRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last run that ended with the given status",
		}, []string{"status"}),
		rateLimitRemaining: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_rate_limit_remaining",
			Help:      "Remaining feed requests reported by the last fetch",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveSkip counts a record excluded by normalization.
func (r *Recorder) ObserveSkip(reason model.SkipReason) {
	if r == nil {
		return
	}
	r.rowsSkipped.WithLabelValues(string(reason)).Inc()
}

// ObserveRun records the outcome of a finished run.
func (r *Recorder) ObserveRun(s model.RunSummary, at time.Time) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(string(s.Status)).Inc()
	r.rowsFetched.Add(float64(s.RowsFetched))
	r.rowsInserted.Add(float64(s.RowsInserted))
	r.lastRun.WithLabelValues(string(s.Status)).Set(float64(at.Unix()))
	if s.RateLimit.Known {
		r.rateLimitRemaining.Set(float64(s.RateLimit.Remaining))
	}
}

// Push sends the collected metrics to a Prometheus Pushgateway.
func (r *Recorder) Push(gatewayURL string) error {
	if r == nil || gatewayURL == "" {
		return nil
	}
	if err := push.New(gatewayURL, jobName).Gatherer(r.registry).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
