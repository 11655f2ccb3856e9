// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_messages_processed_total",
			Help: "Total number of chat messages processed",
		},
		[]string{"channel", "intent"},
	)

	FallbackResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_fallback_responses_total",
			Help: "Total number of responses served by the rule-based fallback",
		},
		[]string{"reason"},
	)

	SyncedDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_synced_documents_total",
			Help: "Total number of catalog documents synced to the vector store",
		},
		[]string{"content_type"},
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_errors_total",
			Help: "Total number of documents that failed to sync",
		},
		[]string{"content_type"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "vector_search_duration_seconds",
			Help: "Duration of vector similarity searches in seconds",
		},
		[]string{"collection"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbot_active_sessions",
			Help: "Number of conversation sessions currently held in memory",
		},
	)
)
