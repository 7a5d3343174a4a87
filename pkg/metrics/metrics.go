// Package metrics records pipeline run metrics with Prometheus collectors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the stage duration histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRegistry sets the registry the collectors are registered with.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(r *Recorder) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// Recorder holds the collectors of one pipeline run.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	rows          *prometheus.GaugeVec
	coerced       prometheus.Counter
	modelScore    *prometheus.GaugeVec
}

// New creates a Recorder on a private registry unless one is supplied.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "watchtime",
		buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)

	r.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: r.namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage in seconds",
			Buckets:   r.buckets,
		},
		[]string{"stage"},
	)

	r.stageErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: r.namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that ended in an error",
		},
		[]string{"stage"},
	)

	r.rows = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: r.namespace,
			Name:      "rows",
			Help:      "Row count observed after each stage",
		},
		[]string{"stage"},
	)

	r.coerced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "coerced_cells_total",
		Help:      "Numeric cells that failed to parse and were treated as missing",
	})

	r.modelScore = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: r.namespace,
			Name:      "model_score",
			Help:      "Evaluation metric per model and partition",
		},
		[]string{"model", "partition", "metric"},
	)

	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveStage records the duration of a stage and whether it failed.
func (r *Recorder) ObserveStage(stage string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.stageErrors.WithLabelValues(stage).Inc()
	}
}

// SetRows records the row count after a stage.
func (r *Recorder) SetRows(stage string, n int) {
	if r == nil {
		return
	}
	r.rows.WithLabelValues(stage).Set(float64(n))
}

// AddCoerced counts numeric cells coerced to missing.
func (r *Recorder) AddCoerced(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.coerced.Add(float64(n))
}

// SetScore records one evaluation metric.
func (r *Recorder) SetScore(model, partition, metric string, v float64) {
	if r == nil {
		return
	}
	r.modelScore.WithLabelValues(model, partition, metric).Set(v)
}

// WriteTextfile writes every collected metric to path in the Prometheus
// text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
