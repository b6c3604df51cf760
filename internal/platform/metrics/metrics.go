package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the toolkit backend.
type Metrics struct {
	registry              *prometheus.Registry
	requestsTotal         prometheus.Counter
	transcriptsTotal      prometheus.Counter
	rateLimitRejectsTotal prometheus.Counter
	errorsTotal           prometheus.Counter
	rateLimitEntries      prometheus.Gauge
}

// New creates and registers Prometheus metrics for the toolkit.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toolkit_requests_total",
		Help: "Total number of HTTP requests received",
	})
	transcriptsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toolkit_transcripts_served_total",
		Help: "Total number of transcripts fetched and served successfully",
	})
	rateLimitRejectsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toolkit_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toolkit_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	rateLimitEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "toolkit_rate_limit_entries",
		Help: "Number of client entries currently tracked by the rate limiter",
	})

	registry.MustRegister(
		requestsTotal,
		transcriptsTotal,
		rateLimitRejectsTotal,
		errorsTotal,
		rateLimitEntries,
	)

	return &Metrics{
		registry:              registry,
		requestsTotal:         requestsTotal,
		transcriptsTotal:      transcriptsTotal,
		rateLimitRejectsTotal: rateLimitRejectsTotal,
		errorsTotal:           errorsTotal,
		rateLimitEntries:      rateLimitEntries,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncTranscriptsServed increments the served transcript counter.
func (m *Metrics) IncTranscriptsServed() {
	m.transcriptsTotal.Inc()
}

// IncRateLimitRejected increments the rate-limit rejection counter.
func (m *Metrics) IncRateLimitRejected() {
	m.rateLimitRejectsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// SetRateLimitEntries sets the tracked-clients gauge.
func (m *Metrics) SetRateLimitEntries(n int) {
	m.rateLimitEntries.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values
// (e.g. the live rate-limit entry count).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
