package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxapi_upstream_fetches_total",
			Help: "Upstream rate fetches by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamFetchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fxapi_upstream_fetch_duration_seconds",
			Help:    "Duration of single upstream rate requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxapi_retry_attempts_total",
			Help: "Upstream attempts made by the retry policy, by result",
		},
		[]string{"result"},
	)

	RateCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxapi_rate_cache_lookups_total",
			Help: "Rate cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxapi_conversions_total",
			Help: "Single conversions by outcome",
		},
		[]string{"outcome"},
	)

	BulkRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxapi_bulk_rows_total",
			Help: "Bulk conversion rows by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fxapi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds per route, method and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Outcome maps an error to the success/failure label value.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func ObserveUpstreamFetch(outcome string, startedAt time.Time) {
	UpstreamFetchesTotal.WithLabelValues(outcome).Inc()
	UpstreamFetchDurationSeconds.Observe(time.Since(startedAt).Seconds())
}
