package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ResidentAdded()
	m.ResidentAdded()
	m.ResidentRemoved()
	m.IncrementTopicCreated()
	m.IncrementVote("YES")
	m.IncrementVote("YES")
	m.IncrementDecision("APPROVED")
	m.IncrementRejection("vote", "already_voted")
	m.ObserveOperation("vote", time.Now())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Residents))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TopicsCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.VotesCast.WithLabelValues("YES")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Decisions.WithLabelValues("APPROVED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Rejections.WithLabelValues("vote", "already_voted")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
