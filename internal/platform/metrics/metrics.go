package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP traffic on its own registry.
type Collector struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited prometheus.Counter
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the login rate limiter.",
	})
	reg.MustRegister(
		requests,
		duration,
		rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Collector{registry: reg, requests: requests, duration: duration, rateLimited: rateLimited}
}

func (c *Collector) Record(route, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
	if status == http.StatusTooManyRequests {
		c.rateLimited.Inc()
	}
}

// Handler exposes the registry in the text exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
