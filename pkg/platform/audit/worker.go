package audit

import (
	"context"
	"log/slog"
)

// ChannelStore decouples emit sites from sink latency: Append enqueues onto a
// buffered channel and returns immediately; a Worker drains the channel into
// the real sink. When the buffer is full the event is dropped rather than
// blocking the attendance request.
type ChannelStore struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewChannelStore(buffer int, logger *slog.Logger) *ChannelStore {
	return &ChannelStore{inbox: make(chan Event, buffer), logger: logger}
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
	default:
		s.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", string(event.Action),
		)
	}
	return nil
}

// Inbox exposes the receive side for a Worker.
func (s *ChannelStore) Inbox() <-chan Event { return s.inbox }

// Worker consumes audit events from a channel and persists them to the
// configured sink. Run until ctx is cancelled; one worker per process is
// enough at attendance traffic rates.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
