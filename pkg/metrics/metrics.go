package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServiceName is the label value shared by every collector in this process.
const ServiceName = "karavan-api"

// =============================================================================
// HTTP metrics
// =============================================================================

// HttpRequestsTotal counts every HTTP request.
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration is the response latency histogram.
// Example: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight is the number of requests currently being processed.
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Redis metrics
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka metrics
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business metrics
// =============================================================================

// ExchangeRateUpdatesTotal counts applied rate snapshots by origin.
// source: provider, redis, persisted, default
var ExchangeRateUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exchange_rate_updates_total",
		Help: "Total number of exchange rate snapshot updates by source",
	},
	[]string{"service", "source"},
)

// ExchangeRateProviderFailures counts failed provider fetches.
var ExchangeRateProviderFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exchange_rate_provider_failures_total",
		Help: "Total number of failed exchange rate provider fetches",
	},
	[]string{"service"},
)

// CurrencyConversionsTotal counts canonical-price conversions per currency.
var CurrencyConversionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "currency_conversions_total",
		Help: "Total number of price conversions to TRY",
	},
	[]string{"service", "currency"},
)

// ProductsCreatedTotal counts created products (single and bulk import).
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	},
	[]string{"service", "source"}, // source: api, bulk
)

// QuotesCreatedTotal counts created quotes.
var QuotesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quotes_created_total",
		Help: "Total number of quotes created",
	},
	[]string{"service"},
)
