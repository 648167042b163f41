package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Feed fetch outcomes recorded by RecordFeedFetch.
const (
	FeedFetchCacheHit = "cache_hit"
	FeedFetchUpstream = "upstream"
	FeedFetchFailed   = "failed"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	requestCount *prometheus.CounterVec
	requestTime  *prometheus.HistogramVec
	errorCount   *prometheus.CounterVec
	feedFetches  *prometheus.CounterVec
	rosterSize   prometheus.Histogram
}

// NewMetrics initializes and registers collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		feedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_feed_fetches_total",
			Help: "Athlete sheet fetches by outcome.",
		}, []string{"outcome"}),
		rosterSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_entries",
			Help:    "Entries per normalized roster.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	m.registry.MustRegister(m.requestCount, m.requestTime, m.errorCount, m.feedFetches, m.rosterSize)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestTime.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(route, method, code).Inc()
}

// RecordFeedFetch counts one athlete sheet retrieval.
func (m *Metrics) RecordFeedFetch(outcome string) {
	if m == nil {
		return
	}
	m.feedFetches.WithLabelValues(outcome).Inc()
}

// RecordRosterSize observes the number of entries in a served roster.
func (m *Metrics) RecordRosterSize(entries int) {
	if m == nil {
		return
	}
	m.rosterSize.Observe(float64(entries))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
