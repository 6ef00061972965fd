package facade

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pewpola/dao-condominium/pkg/platform/circuit"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
)

var errStoreDown = errors.Join(sentinel.ErrUnavailable, errors.New("connection refused"))

// flakyPointer wraps an in-memory pointer and fails every call while down.
type flakyPointer struct {
	inner *InMemoryPointer
	down  bool
}

func (f *flakyPointer) Load(ctx context.Context) (string, error) {
	if f.down {
		return "", errStoreDown
	}
	return f.inner.Load(ctx)
}

func (f *flakyPointer) Store(ctx context.Context, handle string) error {
	if f.down {
		return errStoreDown
	}
	return f.inner.Store(ctx, handle)
}

type degradedRecorder struct {
	transitions []bool
}

func (d *degradedRecorder) SetPointerDegraded(degraded bool) {
	d.transitions = append(d.transitions, degraded)
}

func TestResilientPointerServesLastKnownHandleWhileOpen(t *testing.T) {
	ctx := context.Background()
	primary := &flakyPointer{inner: NewInMemoryPointer()}
	observer := &degradedRecorder{}
	pointer := NewResilientPointer(primary,
		WithBreaker(circuit.New("test-pointer", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))),
		WithDegradedObserver(observer),
	)

	require.NoError(t, pointer.Store(ctx, "condominium-v1"))
	primary.down = true

	_, err := pointer.Load(ctx)
	require.ErrorIs(t, err, sentinel.ErrUnavailable, "below the threshold the outage is visible")

	handle, err := pointer.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "condominium-v1", handle)
	assert.Equal(t, []bool{true}, observer.transitions)

	primary.down = false
	handle, err = pointer.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "condominium-v1", handle)
	assert.Equal(t, []bool{true, false}, observer.transitions)
}

func TestResilientPointerDoesNotHideFailedUpgrades(t *testing.T) {
	ctx := context.Background()
	primary := &flakyPointer{inner: NewInMemoryPointer()}
	pointer := NewResilientPointer(primary, WithBreaker(circuit.New("test-pointer", circuit.WithFailureThreshold(1))))

	require.NoError(t, pointer.Store(ctx, "condominium-v1"))
	primary.down = true

	err := pointer.Store(ctx, "condominium-v2")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)

	handle, err := pointer.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "condominium-v1", handle)
}

func TestResilientPointerWithoutHistoryReportsOutage(t *testing.T) {
	primary := &flakyPointer{inner: NewInMemoryPointer(), down: true}
	pointer := NewResilientPointer(primary, WithBreaker(circuit.New("test-pointer", circuit.WithFailureThreshold(1))))

	_, err := pointer.Load(context.Background())
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestResilientPointerOverRedisOutage(t *testing.T) {
	ctx := context.Background()
	client, mr := newMiniRedisClient(t)
	pointer := NewResilientPointer(NewRedisPointer(client),
		WithBreaker(circuit.New("test-pointer", circuit.WithFailureThreshold(1))),
	)

	require.NoError(t, pointer.Store(ctx, "condominium-v1"))
	mr.Close()

	handle, err := pointer.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "condominium-v1", handle)
}

func TestResilientPointerPassesNotFoundThrough(t *testing.T) {
	pointer := NewResilientPointer(NewInMemoryPointer())

	_, err := pointer.Load(context.Background())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
