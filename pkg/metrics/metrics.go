// Package metrics exposes Prometheus instrumentation for flexdash: outgoing
// hub requests, dashboard HTTP handlers and a collector that re-exports the
// hub's own counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flexdash"

// ClientMetrics instruments requests made to the Flex hub
type ClientMetrics struct {
	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClientMetrics creates client metrics and registers them with reg
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hub_requests_in_flight",
			Help:      "Number of requests to the Flex hub currently in flight",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hub_requests_total",
				Help:      "Total requests sent to the Flex hub by status code and method",
			},
			[]string{"code", "method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "hub_request_duration_seconds",
				Help:      "Latency of requests to the Flex hub",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"code", "method"},
		),
	}
	reg.MustRegister(m.inFlight, m.requests, m.duration)
	return m
}

// InstrumentTransport wraps next so every request is counted and timed.
// A nil next uses http.DefaultTransport.
func (m *ClientMetrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
		promhttp.InstrumentRoundTripperCounter(m.requests,
			promhttp.InstrumentRoundTripperDuration(m.duration, next),
		),
	)
}

// HTTPMetrics instruments the dashboard's own handlers
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	size     *prometheus.HistogramVec
}

// NewHTTPMetrics creates handler metrics and registers them with reg
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total dashboard HTTP requests by handler and status",
			},
			[]string{"handler", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Dashboard HTTP request latency by handler",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"handler"},
		),
		size: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "Dashboard HTTP response size in bytes by handler",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"handler"},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.size)
	return m
}

// Instrument wraps a handler, labelling its metrics with name
func (m *HTTPMetrics) Instrument(name string, next http.Handler) http.Handler {
	labels := prometheus.Labels{"handler": name}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		timer := prometheus.NewTimer(m.duration.With(labels))
		next.ServeHTTP(rw, r)
		timer.ObserveDuration()

		m.requests.WithLabelValues(name, strconv.Itoa(rw.statusCode)).Inc()
		m.size.With(labels).Observe(float64(rw.bytesWritten))
	})
}

type responseWriter struct {
	http.ResponseWriter
	bytesWritten int
	statusCode   int
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
