package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFacadeMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementUpgrade()
	m.IncrementUpgrade()
	m.IncrementForwardFailure("vote", "no_implementation")

	assert.InDelta(t, 2, testutil.ToFloat64(m.Upgrades), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ForwardFailures.WithLabelValues("vote", "no_implementation")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.ForwardFailures.WithLabelValues("vote", "unavailable")), 0)

	m.SetPointerDegraded(true)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PointerDegraded), 0)
	m.SetPointerDegraded(false)
	assert.InDelta(t, 0, testutil.ToFloat64(m.PointerDegraded), 0)
}
