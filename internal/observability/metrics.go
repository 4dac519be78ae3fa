package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionsApplied counts reaction status changes accepted by the
	// reaction use case, by subject kind and resulting status.
	ReactionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_reactions_applied_total",
		Help: "Total number of reaction status changes applied",
	}, []string{"subject", "status"})

	// ProjectionRuns counts engagement summary recomputes by subject kind and outcome.
	ProjectionRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_projection_runs_total",
		Help: "Total number of engagement summary recomputes",
	}, []string{"subject", "outcome"})
)
