// Package metrics exposes prometheus collectors for bracket sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	Commands    *prometheus.CounterVec
	Sessions    prometheus.Gauge
	Subscribers prometheus.Gauge
	Tournaments prometheus.Counter
	StoreErrors prometheus.Counter
}

// New registers collectors on a private registry so tests can build as many
// as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "commands_total",
			Help:      "Transitions attempted, by command type and result.",
		}, []string{"type", "result"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bracket",
			Name:      "sessions_active",
			Help:      "Bracket sessions currently held by the hub.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bracket",
			Name:      "subscribers_active",
			Help:      "Snapshot subscribers across all sessions.",
		}),
		Tournaments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "tournaments_completed_total",
			Help:      "Brackets played through to a champion.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "store_errors_total",
			Help:      "Failed snapshot saves.",
		}),
	}
	m.registry.MustRegister(m.Commands, m.Sessions, m.Subscribers, m.Tournaments, m.StoreErrors)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCommand(cmdType string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.Commands.WithLabelValues(cmdType, result).Inc()
}
