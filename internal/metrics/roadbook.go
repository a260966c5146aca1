// Package metrics exposes Prometheus collectors for the question pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roadbook"

// Pipeline Prometheus metrics.
var (
	RouteTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_total",
			Help:      "Questions by routed knowledge domain",
		},
		[]string{"route"},
	)

	LanguageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "language_total",
			Help:      "Questions by resolved language",
		},
		[]string{"lang"},
	)

	RetrievalPassTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_pass_total",
			Help:      "Manual retrieval outcomes by winning pass",
		},
		[]string{"pass"}, // base, expanded, rescue, rescue_loose, vector, none
	)

	TranslationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_cache_total",
			Help:      "Translation cache hits and misses",
		},
		[]string{"result"}, // hit, miss, shared
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Language model requests",
		},
		[]string{"op", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Language model request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op", "model"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "Language model tokens consumed",
		},
		[]string{"op", "model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_total",
			Help:      "Query embedding cache hits and misses",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// RegisterPipelineMetrics registers the pipeline collectors. Must be called from main.
func RegisterPipelineMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RouteTotal,
			LanguageTotal,
			RetrievalPassTotal,
			TranslationCacheTotal,
			LLMRequestsTotal,
			LLMRequestDuration,
			LLMTokensTotal,
			EmbeddingCacheTotal,
		)
	})
}
