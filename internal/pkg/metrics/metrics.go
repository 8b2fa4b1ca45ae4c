// Package metrics exposes lifecycle counters to Prometheus.
package metrics

import (
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ ports.LifecycleMetrics = (*Metrics)(nil)

// Metrics holds the lifecycle counters.
type Metrics struct {
	TransitionsTotal         *prometheus.CounterVec
	VersionsCreatedTotal     prometheus.Counter
	ActivationsTotal         prometheus.Counter
	ExpiredTotal             prometheus.Counter
	InvariantViolationsTotal prometheus.Counter
}

// NewMetrics registers the counters with reg. Use prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifecycle_transitions_total",
				Help: "Total number of committed status transitions",
			},
			[]string{"category", "to"},
		),
		VersionsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifecycle_versions_created_total",
			Help: "Total number of quote versions forked",
		}),
		ActivationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifecycle_activations_total",
			Help: "Total number of quote versions activated",
		}),
		ExpiredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifecycle_expired_total",
			Help: "Total number of quotes expired by the sweeper",
		}),
		InvariantViolationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifecycle_invariant_violations_total",
			Help: "Total number of operations rolled back on a broken lineage invariant",
		}),
	}
}

func (m *Metrics) TransitionApplied(category lifecycle.Category, to lifecycle.Status) {
	m.TransitionsTotal.WithLabelValues(string(category), string(to)).Inc()
}

func (m *Metrics) VersionCreated() {
	m.VersionsCreatedTotal.Inc()
}

func (m *Metrics) VersionActivated() {
	m.ActivationsTotal.Inc()
}

// DocumentsExpired ignores non-positive counts.
func (m *Metrics) DocumentsExpired(n int) {
	if n > 0 {
		m.ExpiredTotal.Add(float64(n))
	}
}

func (m *Metrics) InvariantViolated() {
	m.InvariantViolationsTotal.Inc()
}
