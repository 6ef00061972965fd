package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the Kafka audit sink.
type Metrics struct {
	Produced            prometheus.Counter
	ProduceFailures     prometheus.Counter
	CircuitDropped      prometheus.Counter
	CircuitBreakerState prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Produced: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_audit_kafka_produced_total",
			Help: "Total number of audit events produced to Kafka",
		}),
		ProduceFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_audit_kafka_produce_failures_total",
			Help: "Total number of failed audit produce attempts",
		}),
		CircuitDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_audit_kafka_circuit_dropped_total",
			Help: "Total number of audit events dropped while the circuit was open",
		}),
		CircuitBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "condo_audit_kafka_circuit_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) setCircuitState(open bool) {
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
