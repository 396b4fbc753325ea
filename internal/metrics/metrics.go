package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synapse",
			Subsystem: "admin",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "synapse",
			Subsystem: "admin",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Preset validation runs
	TestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synapse",
			Subsystem: "admin",
			Name:      "preset_test_runs_total",
			Help:      "Total preset validation agent executions",
		},
		[]string{"status"},
	)

	// Validation run duration. LLM calls dominate, hence the wide buckets.
	TestRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "synapse",
			Subsystem: "admin",
			Name:      "preset_test_duration_seconds",
			Help:      "Preset validation run duration in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest captures one HTTP request observation.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}
