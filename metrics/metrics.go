package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pq_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pq_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// GenerationRuns counts generator/validator invocations by outcome
	GenerationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_generation_runs_total",
			Help: "Total number of input generation runs",
		},
		[]string{"outcome"},
	)

	// GenerationDuration measures how long generator/validator scripts take
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pq_generation_duration_seconds",
			Help:    "Duration of input generation runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Submissions counts submission attempts by outcome
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_submissions_total",
			Help: "Total number of solution submissions",
		},
		[]string{"outcome"},
	)

	// BonusesAwarded counts awarded bonuses by kind
	BonusesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_bonuses_awarded_total",
			Help: "Total number of bonuses awarded",
		},
		[]string{"kind"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)
)
