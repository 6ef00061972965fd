package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "github.com/pewpola/dao-condominium/pkg/domain"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()

	assert.True(t, Caller(ctx).IsNil())
	assert.Empty(t, RequestID(ctx))

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx = WithCaller(ctx, id.Identity("manager"))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, id.Identity("manager"), Caller(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, fixed, Now(ctx))
}

func TestNowFallsBackToWallClock(t *testing.T) {
	before := time.Now()
	got := Now(context.Background())
	assert.False(t, got.Before(before))
}
