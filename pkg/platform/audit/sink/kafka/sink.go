// Package kafka publishes audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "github.com/pewpola/dao-condominium/pkg/platform/audit"
)

// ErrCircuitOpen is returned by Append while the broker is considered unhealthy.
var ErrCircuitOpen = errors.New("audit kafka sink: circuit open")

// Producer is the part of *kgo.Client the sink uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Sink implements audit.Store by producing one JSON record per event.
// Records are keyed by subject so all events for one resident or topic stay ordered.
type Sink struct {
	producer Producer
	topic    string
	breaker  *breaker
	metrics  *Metrics
}

type Option func(*Sink)

func WithMetrics(m *Metrics) Option {
	return func(s *Sink) {
		s.metrics = m
	}
}

// WithCircuitBreaker overrides the failure threshold and cooldown.
func WithCircuitBreaker(threshold int, cooldown time.Duration) Option {
	return func(s *Sink) {
		s.breaker = newBreaker(threshold, cooldown, s.breaker.now)
	}
}

func NewSink(producer Producer, topic string, opts ...Option) *Sink {
	s := &Sink{
		producer: producer,
		topic:    topic,
		breaker:  newBreaker(0, 0, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	if !s.breaker.allow() {
		if s.metrics != nil {
			s.metrics.CircuitDropped.Inc()
		}
		return ErrCircuitOpen
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Subject),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}

	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		open := s.breaker.failure()
		if s.metrics != nil {
			s.metrics.ProduceFailures.Inc()
			s.metrics.setCircuitState(open)
		}
		return fmt.Errorf("produce audit event: %w", err)
	}

	s.breaker.success()
	if s.metrics != nil {
		s.metrics.Produced.Inc()
		s.metrics.setCircuitState(false)
	}
	return nil
}
