package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "rollcall/pkg/domain"
	"rollcall/pkg/requestcontext"
)

const testOwner = id.OwnerID("worker@example.com")

func TestPublisherFillsMetadata(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, slog.New(slog.DiscardHandler))

	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	ctx = requestcontext.WithDevice(ctx, "Firefox/Linux")

	pub.Emit(ctx, Event{Owner: testOwner, Action: ActionCheckIn, Date: "2026-01-15"})

	events := store.ListByOwner(ctx, testOwner)
	require.Len(t, events, 1)
	got := events[0]
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
	assert.Equal(t, "req-123", got.RequestID)
	assert.Equal(t, "Firefox/Linux", got.Device)
	assert.Equal(t, ActionCheckIn, got.Action)
}

type failingStore struct{}

func (failingStore) Append(context.Context, Event) error { return errors.New("sink down") }

func TestPublisherSwallowsSinkErrors(t *testing.T) {
	pub := NewPublisher(failingStore{}, slog.New(slog.DiscardHandler))

	assert.NotPanics(t, func() {
		pub.Emit(context.Background(), Event{Owner: testOwner, Action: ActionCheckOut})
	})
}

func TestNilPublisherIsSafe(t *testing.T) {
	var pub *Publisher
	assert.NotPanics(t, func() {
		pub.Emit(context.Background(), Event{Owner: testOwner, Action: ActionCheckIn})
	})
}

func TestChannelStoreDropsWhenFull(t *testing.T) {
	ch := NewChannelStore(1, slog.New(slog.DiscardHandler))

	require.NoError(t, ch.Append(context.Background(), Event{Action: ActionCheckIn}))
	// Second append finds the buffer full; it must not block or fail.
	require.NoError(t, ch.Append(context.Background(), Event{Action: ActionCheckOut}))

	select {
	case got := <-ch.Inbox():
		assert.Equal(t, ActionCheckIn, got.Action)
	default:
		t.Fatal("expected the first event to be buffered")
	}
	select {
	case got := <-ch.Inbox():
		t.Fatalf("expected the second event to be dropped, got %v", got.Action)
	default:
	}
}

func TestWorkerDrainsIntoSink(t *testing.T) {
	ch := NewChannelStore(8, slog.New(slog.DiscardHandler))
	sink := NewInMemoryStore()
	worker := NewWorker(sink, ch.Inbox())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.NoError(t, ch.Append(ctx, Event{Owner: testOwner, Action: ActionAutoCompleted, Date: "2026-01-15"}))

	require.Eventually(t, func() bool {
		return len(sink.ListByOwner(ctx, testOwner)) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
