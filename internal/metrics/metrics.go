// Package metrics exposes Prometheus collectors for auth outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	AuthRequests *prometheus.CounterVec
}

// New registers and returns the service metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuthRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Auth endpoint requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
}

// ObserveAuth records one auth request outcome.
func (m *Metrics) ObserveAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthRequests.WithLabelValues(operation, outcome).Inc()
}
