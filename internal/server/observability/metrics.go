// Package observability exposes Prometheus metrics for the RPC surface.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snowballr",
			Name:      "rpc_requests_total",
			Help:      "Handled RPCs by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "snowballr",
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling time, response delay included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snowballr",
			Name:      "rpc_in_flight",
			Help:      "RPCs currently being handled.",
		}),
	}
	m.Registry.MustRegister(
		m.requests,
		m.duration,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Started marks an RPC as in flight and returns the function that records
// its outcome.
func (m *Metrics) Started(method string) func(code string) {
	start := time.Now()
	m.inFlight.Inc()
	return func(code string) {
		m.inFlight.Dec()
		m.requests.WithLabelValues(method, code).Inc()
		m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}
}
