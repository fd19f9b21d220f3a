package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding and recognition Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artlens",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "artlens",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artlens",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artlens",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RecognitionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artlens",
			Name:      "recognition_total",
			Help:      "Recognition requests by outcome",
		},
		[]string{"outcome"}, // "confident" / "ambiguous" / "no_candidates" / "error"
	)

	RecognitionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "artlens",
			Name:      "recognition_duration_seconds",
			Help:      "End-to-end recognition duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)
)

var embMetricsRegistered bool

// RegisterEmbeddingMetrics registers embedding and recognition metrics.
// Must be called once from main.
func RegisterEmbeddingMetrics() {
	if embMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(RecognitionTotal)
	prometheus.MustRegister(RecognitionDuration)
	embMetricsRegistered = true
}
