package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "github.com/pewpola/dao-condominium/pkg/platform/audit"
)

type fakeProducer struct {
	err     error
	records []*kgo.Record
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if p.err == nil {
			p.records = append(p.records, r)
		}
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func withClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.breaker.now = now
	}
}

func TestSinkProducesJSONRecord(t *testing.T) {
	producer := &fakeProducer{}
	metrics := NewMetrics(prometheus.NewRegistry())
	sink := NewSink(producer, "governance.audit", WithMetrics(metrics))

	event := audit.Event{
		ID:        "evt-1",
		Category:  audit.CategoryGovernance,
		Action:    string(audit.EventVoteCast),
		ActorID:   "alice",
		Subject:   "topic",
		Residence: 1202,
		Decision:  "YES",
	}
	require.NoError(t, sink.Append(context.Background(), event))

	require.Len(t, producer.records, 1)
	record := producer.records[0]
	assert.Equal(t, "governance.audit", record.Topic)
	assert.Equal(t, []byte("topic"), record.Key)

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, event.Action, decoded.Action)
	assert.Equal(t, 1202, decoded.Residence)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Produced))
}

func TestSinkOpensCircuitAfterFailures(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	producer := &fakeProducer{err: errors.New("broker down")}
	metrics := NewMetrics(prometheus.NewRegistry())
	sink := NewSink(producer, "audit",
		WithMetrics(metrics),
		WithCircuitBreaker(2, time.Minute),
		withClock(clock.now),
	)
	ctx := context.Background()
	event := audit.Event{Action: string(audit.EventTopicAdded)}

	assert.Error(t, sink.Append(ctx, event))
	assert.Error(t, sink.Append(ctx, event))
	assert.ErrorIs(t, sink.Append(ctx, event), ErrCircuitOpen)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CircuitBreakerState))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CircuitDropped))

	producer.err = nil
	clock.t = clock.t.Add(time.Minute)
	require.NoError(t, sink.Append(ctx, event))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.CircuitBreakerState))
}
