// Package metrics defines the Prometheus collectors exported by lvfold.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lvfold"

// Outcome labels for Operations.
const (
	OutcomeOK        = "ok"
	OutcomeTruncated = "truncated"
	OutcomeError     = "error"
)

// Metrics groups the collectors. Each instance registers on its own
// registerer so tests and embedded servers do not collide.
type Metrics struct {
	// Operations counts calls by operation, model and outcome.
	Operations *prometheus.CounterVec

	// Duration tracks wall time per operation.
	Duration *prometheus.HistogramVec

	// SequenceLength tracks input lengths.
	SequenceLength prometheus.Histogram

	// Structures tracks how many optimal structures were returned.
	Structures prometheus.Histogram

	// CacheHits and CacheMisses count result cache lookups.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total folding operations by operation, model and outcome",
		}, []string{"operation", "model", "outcome"}),

		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Folding operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"operation"}),

		SequenceLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sequence_length",
			Help:      "Length of folded sequences",
			Buckets:   []float64{10, 50, 100, 200, 500, 1000, 2000},
		}),

		Structures: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimal_structures",
			Help:      "Number of optimal structures returned per fold",
			Buckets:   []float64{1, 2, 5, 10, 100, 1000, 10000},
		}),

		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Result cache hits",
		}),

		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Result cache misses",
		}),
	}
}
