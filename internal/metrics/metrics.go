// Package metrics collects Prometheus metrics for calls made by the UDLM API
// client and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeServerError = "server_error"
	OutcomeTransport   = "transport_error"
)

// Recorder is what the API client reports to.
type Recorder interface {
	RecordRequest(op string, outcome string, latency time.Duration)
	RecordHTTPStatus(op string, statusCode int)
}

type Collector struct {
	requests   *prometheus.CounterVec
	httpStatus *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "udlm_client_requests_total",
			Help: "API requests issued by the client, by operation and outcome.",
		}, []string{"op", "outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "udlm_client_http_status_total",
			Help: "HTTP status codes received, by operation.",
		}, []string{"op", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "udlm_client_request_latency_seconds",
			Help:    "Round-trip latency of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(c.requests, c.httpStatus, c.latency)

	return c
}

func (c *Collector) RecordRequest(op string, outcome string, latency time.Duration) {
	c.requests.WithLabelValues(op, outcome).Inc()
	c.latency.WithLabelValues(op).Observe(latency.Seconds())
}

func (c *Collector) RecordHTTPStatus(op string, statusCode int) {
	c.httpStatus.WithLabelValues(op, strconv.Itoa(statusCode)).Inc()
}

type nopRecorder struct{}

func (nopRecorder) RecordRequest(string, string, time.Duration) {}
func (nopRecorder) RecordHTTPStatus(string, int)                {}

// Nop returns a Recorder that drops everything.
func Nop() Recorder { return nopRecorder{} }

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Mux serves Handler on /metrics.
func Mux(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
