// README: Prometheus collectors for provider calls and intent classification.
package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create independent instances.
type Metrics struct {
	registry       *prometheus.Registry
	providerCalls  *prometheus.CounterVec
	intentDecision *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripcopilot",
			Name:      "provider_calls_total",
			Help:      "Calls to external map providers by endpoint and outcome.",
		}, []string{"provider", "endpoint", "outcome"}),
		intentDecision: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripcopilot",
			Name:      "intent_classifications_total",
			Help:      "Intent classifications by deciding tier and intent type.",
		}, []string{"tier", "intent"}),
	}
	m.registry.MustRegister(m.providerCalls, m.intentDecision)
	return m
}

func (m *Metrics) ObserveProviderCall(provider, endpoint, outcome string) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(provider, endpoint, outcome).Inc()
}

func (m *Metrics) ObserveIntent(tier, intent string) {
	if m == nil {
		return
	}
	m.intentDecision.WithLabelValues(tier, intent).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
