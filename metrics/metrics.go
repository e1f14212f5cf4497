package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Business metrics for the engagement service
	LikesToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_toggled_total",
			Help: "Total number of like toggles",
		},
		[]string{"action", "status"},
	)

	ViewsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "views_recorded_total",
			Help: "Total number of article views recorded",
		},
		[]string{"status"},
	)

	FeedConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_connections_active",
			Help: "Number of active live feed subscriptions",
		},
	)

	FeedSnapshotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_snapshots_total",
			Help: "Total number of feed snapshots delivered",
		},
	)

	ReconciledArticlesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciled_articles_total",
			Help: "Total number of articles whose like counter was repaired",
		},
	)

	// Database metrics
	MongoOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_operations_total",
			Help: "Total number of MongoDB operations",
		},
		[]string{"operation", "collection", "status"},
	)

	MongoOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongo_operation_duration_seconds",
			Help:    "MongoDB operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	// NATS metrics
	NatsMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of NATS messages published",
		},
		[]string{"subject", "status"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
