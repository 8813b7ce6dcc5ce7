package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	StatsComputeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_compute_count",
			Help: "Total number of period aggregations computed",
		},
		[]string{"kind"}, // kind: quarter, month, week, period, streak
	)

	EntryTransitionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entry_transition_count",
			Help: "Total number of habit entry status transitions",
		},
		[]string{"to"}, // to: done, missed, untracked
	)

	LeaderboardCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_cache_requests",
			Help: "Weekly leaderboard cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

func IncrementStatsCompute(kind string) {
	StatsComputeCount.WithLabelValues(kind).Inc()
}

func IncrementEntryTransition(to string) {
	EntryTransitionCount.WithLabelValues(to).Inc()
}

func IncrementLeaderboardCache(result string) {
	LeaderboardCacheHits.WithLabelValues(result).Inc()
}
