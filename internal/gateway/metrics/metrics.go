package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests     *prometheus.CounterVec
	LookupMisses prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bankadapter_gateway_requests_total",
			Help: "Total gateway operations, labeled by operation",
		}, []string{"op"}),
		LookupMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankadapter_gateway_lookup_misses_total",
			Help: "Total by-key member lookups that found no match",
		}),
	}
}

func (m *Metrics) IncrementRequests(op string) {
	m.Requests.WithLabelValues(op).Inc()
}

func (m *Metrics) IncrementLookupMisses() {
	m.LookupMisses.Inc()
}
