package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kana_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kana_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kana_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Conversion metrics, labelled by "from->to" direction.
var (
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kana_conversions_total",
		Help: "Conversions by direction and result",
	}, []string{"direction", "result"})

	ConversionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kana_conversion_duration_seconds",
		Help:    "Time spent converting one text",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	}, []string{"direction"})

	ConversionInputRunes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kana_conversion_input_runes",
		Help:    "Length of converted input in code points",
		Buckets: prometheus.ExponentialBuckets(8, 4, 7),
	})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kana_batch_size",
		Help:    "Number of texts per batch request",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})
)

// History store metrics.
var (
	HistoryWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kana_history_writes_total",
		Help: "Conversion history writes by result",
	}, []string{"result"})

	HistoryPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kana_history_pruned_total",
		Help: "History rows removed by the retention sweep",
	})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kana_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kana_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kana_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kana_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)
