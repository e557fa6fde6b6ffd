// Package audit records attendance lifecycle events in an append-only trail.
// Services emit; sinks (memory, postgres outbox, kafka) persist.
package audit

import (
	"context"
	"time"

	id "rollcall/pkg/domain"
)

// Action names an auditable attendance event.
type Action string

const (
	ActionCheckIn            Action = "attendance.check_in"
	ActionCheckOut           Action = "attendance.check_out"
	ActionAutoCompleted      Action = "attendance.auto_completed"
	ActionVerificationFailed Action = "attendance.verification_failed"
	ActionDuplicateCheckIn   Action = "attendance.duplicate_check_in"
)

// Event is one audit trail entry. Device and RequestID come from middleware
// via the request context.
type Event struct {
	ID        string
	Owner     id.OwnerID
	Action    Action
	Date      string // YYYY-MM-DD the event refers to, if any
	Detail    string
	Device    string
	RequestID string
	Timestamp time.Time
}

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
