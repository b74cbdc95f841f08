package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "momentcanvas_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// VisibilityDecisions counts diary access decisions by outcome.
	VisibilityDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momentcanvas_visibility_decisions_total",
		Help: "Diary visibility decisions by outcome (allow/deny)",
	}, []string{"outcome"})

	// TokenReissues counts refresh-token reissue attempts by result.
	TokenReissues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momentcanvas_token_reissues_total",
		Help: "Refresh token reissue attempts by result",
	}, []string{"result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
