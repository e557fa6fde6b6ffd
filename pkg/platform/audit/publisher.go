package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rollcall/pkg/requestcontext"
)

// Publisher captures structured audit events. It fills in identity and
// request metadata so emit sites stay one line. Audit failures are logged and
// swallowed: losing a trail entry must never fail the attendance operation
// that produced it.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil || p.store == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.Device(ctx)
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to append audit event",
			"action", string(event.Action),
			"error", err,
		)
	}
}
