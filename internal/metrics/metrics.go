package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobsearch_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	CacheLookupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobsearch_cache_lookups_total",
			Help: "Result cache lookups by outcome.",
		},
		[]string{"result"},
	)
	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobsearch_cache_entries",
			Help: "Number of query results currently held in the cache.",
		},
	)
	UpstreamRequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobsearch_upstream_request_duration_seconds",
			Help:       "Duration of job search provider requests.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"outcome"},
	)
	ServedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobsearch_jobs_served_total",
			Help: "Total number of job records returned to callers.",
		},
	)
	DroppedPostingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobsearch_postings_dropped_total",
			Help: "Upstream postings dropped because they had no description.",
		},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "The HTTP request latencies in seconds",
		},
		[]string{"method", "endpoint"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ErrorsCounter,
			CacheLookupsCounter,
			CacheEntries,
			UpstreamRequestDuration,
			ServedJobsCounter,
			DroppedPostingsCounter,
			HTTPRequestsTotal,
			HTTPRequestDuration,
		)
	})
}
