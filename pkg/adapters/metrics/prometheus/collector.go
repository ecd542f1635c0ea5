package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records request and transformation metrics using Prometheus
type Collector struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	transformations    *prometheus.CounterVec
	transformInput     prometheus.Histogram
	validationFailures *prometheus.CounterVec
	activeStreams      prometheus.Gauge
}

// NewCollector creates a collector registered with the default registry
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector registered with reg
func NewCollectorWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textcase_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "textcase_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		transformations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textcase_transformations_total",
				Help: "Total number of uppercase transformations",
			},
			[]string{"source"},
		),
		transformInput: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "textcase_transform_input_bytes",
				Help:    "Size of transformation input in bytes",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textcase_validation_failures_total",
				Help: "Total number of rejected requests by reason",
			},
			[]string{"reason"},
		),
		activeStreams: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "textcase_active_streams",
				Help: "Number of open websocket streams",
			},
		),
	}
}

// ObserveRequest records a completed HTTP request.
// Methods outside the standard set share the "other" label.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	method = methodLabel(method)
	c.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTransformation records one transformation of an input of size bytes
func (c *Collector) RecordTransformation(source string, size int) {
	c.transformations.WithLabelValues(source).Inc()
	c.transformInput.Observe(float64(size))
}

// IncValidationFailures increments the count of rejected requests
func (c *Collector) IncValidationFailures(reason string) {
	c.validationFailures.WithLabelValues(reason).Inc()
}

// StreamOpened marks a websocket stream as open
func (c *Collector) StreamOpened() {
	c.activeStreams.Inc()
}

// StreamClosed marks a websocket stream as closed
func (c *Collector) StreamClosed() {
	c.activeStreams.Dec()
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodHead:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodPatch:   true,
	http.MethodOptions: true,
}

func methodLabel(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
