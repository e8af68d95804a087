// Package metrics exposes matchd's prometheus instrumentation.
// Counters cover the job lifecycle and cache effectiveness; the
// in-flight gauge tracks executor saturation against the pool cap.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "matchd",
		Name:      "jobs_submitted_total",
		Help:      "Total number of batch jobs accepted for processing.",
	})

	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "matchd",
		Name:      "jobs_completed_total",
		Help:      "Total number of jobs that reached the completed state.",
	})

	JobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "matchd",
		Name:      "jobs_failed_total",
		Help:      "Total number of jobs failed by a batch-level fault.",
	})

	ItemsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchd",
		Name:      "items_executed_total",
		Help:      "Total item executions partitioned by outcome.",
	}, []string{"outcome"})

	ItemsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchd",
		Name:      "items_in_flight",
		Help:      "Number of items currently executing.",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "matchd",
		Name:      "cache_hits_total",
		Help:      "Total item executions served from the fingerprint cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "matchd",
		Name:      "cache_misses_total",
		Help:      "Total item executions that invoked the domain computation.",
	})

	ItemDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchd",
		Name:      "item_duration_seconds",
		Help:      "Wall-clock duration of item executions.",
		Buckets:   prometheus.DefBuckets,
	})
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)
