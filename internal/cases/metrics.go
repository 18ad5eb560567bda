package cases

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JaimeStill/pendakwaan/internal/workflow"
)

// Metrics counts case lifecycle events.
type Metrics struct {
	transitions *prometheus.CounterVec
	created     prometheus.Counter
}

// NewMetrics registers the case collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "case_transitions_total",
			Help: "Committed case status transitions.",
		}, []string{"from", "to"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cases_created_total",
			Help: "Cases created.",
		}),
	}
	reg.MustRegister(m.transitions, m.created)
	return m
}

func (m *Metrics) transitioned(from, to workflow.Status) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) caseCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}
