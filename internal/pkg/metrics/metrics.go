package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdg3health_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sdg3health_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"route"})
	EmptyResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sdg3health_empty_results_total",
		Help: "Total scoped queries that returned no rows",
	})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdg3health_cache_hits_total",
		Help: "Query cache hits by datatype",
	}, []string{"datatype"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdg3health_cache_misses_total",
		Help: "Query cache misses by datatype",
	}, []string{"datatype"})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDurationMs,
		EmptyResultsTotal,
		CacheHitsTotal,
		CacheMissesTotal,
	)
}
