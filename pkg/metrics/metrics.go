package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Travel plan API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travelplan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travelplan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// One increment per model candidate tried
	GenerationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travelplan",
			Subsystem: "ai",
			Name:      "generation_attempts_total",
			Help:      "Model calls by outcome (success, model_not_found, error)",
		},
		[]string{"provider", "model", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travelplan",
			Subsystem: "ai",
			Name:      "generation_duration_seconds",
			Help:      "Duration of a single model call including normalization",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "model"},
	)

	PlansCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travelplan",
			Subsystem: "plans",
			Name:      "created_total",
			Help:      "Travel plans persisted after successful generation",
		},
		[]string{"type"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordGeneration records a single model attempt
func RecordGeneration(provider, model, outcome string, durationSec float64) {
	GenerationAttemptsTotal.WithLabelValues(provider, model, outcome).Inc()
	GenerationDuration.WithLabelValues(provider, model).Observe(durationSec)
}

// RecordPlanCreated counts a persisted plan by type
func RecordPlanCreated(planType string) {
	PlansCreatedTotal.WithLabelValues(planType).Inc()
}
