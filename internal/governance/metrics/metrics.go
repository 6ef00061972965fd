package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for the governance module.
// Tracks registry size, topic lifecycle, ballots and operation durations.
type Metrics struct {
	Residents         prometheus.Gauge
	TopicsCreated     prometheus.Counter
	TopicsRemoved     prometheus.Counter
	VotesCast         *prometheus.CounterVec
	Decisions         *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers the governance metrics with reg.
// A nil registerer falls back to the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Residents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "condo_residents",
			Help: "Number of identities currently registered as residents",
		}),
		TopicsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_topics_created_total",
			Help: "Total number of topics created",
		}),
		TopicsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_topics_removed_total",
			Help: "Total number of idle topics removed",
		}),
		VotesCast: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "condo_votes_cast_total",
			Help: "Total number of ballots recorded, by choice",
		}, []string{"choice"}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "condo_topic_decisions_total",
			Help: "Total number of closed topics, by outcome",
		}, []string{"outcome"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "condo_operation_rejections_total",
			Help: "Total number of rejected governance operations, by operation and error code",
		}, []string{"operation", "code"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "condo_operation_duration_seconds",
			Help:    "Duration of governance operations",
			Buckets: durationBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) ResidentAdded() {
	m.Residents.Inc()
}

func (m *Metrics) ResidentRemoved() {
	m.Residents.Dec()
}

func (m *Metrics) IncrementTopicCreated() {
	m.TopicsCreated.Inc()
}

func (m *Metrics) IncrementTopicRemoved() {
	m.TopicsRemoved.Inc()
}

func (m *Metrics) IncrementVote(choice string) {
	m.VotesCast.WithLabelValues(choice).Inc()
}

func (m *Metrics) IncrementDecision(outcome string) {
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRejection(operation, code string) {
	m.Rejections.WithLabelValues(operation, code).Inc()
}

// ObserveOperation records the duration of a governance operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
