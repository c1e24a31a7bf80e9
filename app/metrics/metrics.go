package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the prometheus metrics of postfeed. A nil *Collector is
// valid and records nothing.
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	enrichPostsTotal    prometheus.Counter
	enrichFailuresTotal prometheus.Counter
	gatherer            prometheus.Gatherer
}

// NewCollector creates the metrics and registers them on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postfeed_http_requests_total",
				Help: "Total number of HTTP requests served by the posts API",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "postfeed_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		enrichPostsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postfeed_enrich_posts_total",
			Help: "Total number of posts enriched with author and comments",
		}),
		enrichFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postfeed_enrich_failures_total",
			Help: "Total number of enrichment batches that failed",
		}),
		gatherer: reg,
	}
	reg.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.enrichPostsTotal,
		c.enrichFailuresTotal,
	)
	return c
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// PostsEnriched records a successful batch of n posts.
func (c *Collector) PostsEnriched(n int) {
	if c == nil {
		return
	}
	c.enrichPostsTotal.Add(float64(n))
}

// EnrichFailed records a failed batch.
func (c *Collector) EnrichFailed() {
	if c == nil {
		return
	}
	c.enrichFailuresTotal.Inc()
}

// Gatherer exposes the registry, for tests and custom exporters.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// Handler serves the metrics in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
