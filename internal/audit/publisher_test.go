package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		Action:   ActionInviteIssued,
		PolicyID: "policy-1",
	})
	require.NoError(t, err)

	events, err := store.ListByPolicy(context.Background(), "policy-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionInviteIssued, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp should be stamped")
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), Event{
			Action:   ActionGateDenied,
			PolicyID: "policy-2",
		})
		require.NoError(t, err)
	}

	// Close should drain all events.
	pub.Close()

	events, err := store.ListByPolicy(context.Background(), "policy-2")
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_PreservesExplicitTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), Event{
		Action:    ActionPolicyCreated,
		PolicyID:  "policy-3",
		Timestamp: stamp,
	}))

	events, err := store.ListByPolicy(context.Background(), "policy-3")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, stamp, events[0].Timestamp)
}
