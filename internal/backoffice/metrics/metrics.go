package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UpstreamCalls   *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec
	LoginFailures   prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		UpstreamCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bankadapter_upstream_calls_total",
			Help: "Total backoffice calls, labeled by operation and outcome",
		}, []string{"op", "outcome"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankadapter_upstream_latency_seconds",
			Help:    "Latency of backoffice calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankadapter_upstream_login_failures_total",
			Help: "Total failed backoffice signin attempts",
		}),
	}
}

func (m *Metrics) ObserveCall(op, outcome string, start time.Time) {
	m.UpstreamCalls.WithLabelValues(op, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementLoginFailures() {
	m.LoginFailures.Inc()
}
