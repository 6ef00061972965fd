package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/platform/audit/store/memory"
)

type failingStore struct {
	calls int
}

func (f *failingStore) Append(context.Context, audit.Event) error {
	f.calls++
	return errors.New("sink unavailable")
}

func TestWorkerDrainsUntilInboxClosed(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 3)
	inbox <- audit.Event{Action: string(audit.EventTopicAdded)}
	inbox <- audit.Event{Action: string(audit.EventVotingOpened)}
	inbox <- audit.Event{Action: string(audit.EventVoteCast)}
	close(inbox)

	err := NewWorker(store, inbox, nil).Run(context.Background())
	require.NoError(t, err)

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestWorkerKeepsRunningAfterAppendFailure(t *testing.T) {
	store := &failingStore{}
	inbox := make(chan audit.Event, 2)
	inbox <- audit.Event{Action: string(audit.EventTopicAdded)}
	inbox <- audit.Event{Action: string(audit.EventTopicRemoved)}
	close(inbox)

	err := NewWorker(store, inbox, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inbox := make(chan audit.Event)

	done := make(chan error, 1)
	go func() {
		done <- NewWorker(memory.NewInMemoryStore(), inbox, nil).Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
