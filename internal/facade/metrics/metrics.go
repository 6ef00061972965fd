package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks facade upgrades and forwarded calls that could not reach an
// implementation.
type Metrics struct {
	Upgrades        prometheus.Counter
	ForwardFailures *prometheus.CounterVec
	PointerDegraded prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Upgrades: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_facade_upgrades_total",
			Help: "Total number of implementation upgrades",
		}),
		ForwardFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "condo_facade_forward_failures_total",
			Help: "Total number of forwarded calls rejected before reaching an implementation, by reason",
		}, []string{"operation", "reason"}),
		PointerDegraded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "condo_facade_pointer_degraded",
			Help: "1 while the shared implementation pointer store is unavailable",
		}),
	}
}

func (m *Metrics) IncrementUpgrade() {
	m.Upgrades.Inc()
}

func (m *Metrics) IncrementForwardFailure(operation, reason string) {
	m.ForwardFailures.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) SetPointerDegraded(degraded bool) {
	if degraded {
		m.PointerDegraded.Set(1)
		return
	}
	m.PointerDegraded.Set(0)
}
