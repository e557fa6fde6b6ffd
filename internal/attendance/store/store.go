// Package store persists attendance records. Implementations must provide
// keyed upsert and conditional-close semantics; callers never mutate records
// by position and never write an exit time over an existing one.
package store

import (
	"context"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
)

// Store is the only persistence entry point for attendance data. It enforces
// the day-record invariants centrally:
//
//   - UpsertDayRecord inserts a day if and only if no record exists for
//     (owner, date); an existing record returns sentinel.ErrConflict and is
//     never overwritten.
//   - CloseDayRecord sets the exit time if and only if it is still unset, a
//     compare-and-swap on that single field. A closed record returns
//     sentinel.ErrInvalidState; a missing one sentinel.ErrNotFound.
//
// Concurrent CheckOut and Reconcile against the same open day therefore
// produce exactly one successful close; the loser observes ErrInvalidState.
type Store interface {
	// FindRecord returns the full aggregate for an owner, or
	// sentinel.ErrNotFound if the owner has never checked in.
	FindRecord(ctx context.Context, owner id.OwnerID) (*models.AttendanceRecord, error)

	// FindDayRecord returns the day record for (owner, date), or
	// sentinel.ErrNotFound.
	FindDayRecord(ctx context.Context, owner id.OwnerID, date string) (*models.DayRecord, error)

	// LatestDay returns the owner's most recent day record and its month
	// label, or sentinel.ErrNotFound when no record exists.
	LatestDay(ctx context.Context, owner id.OwnerID) (string, *models.DayRecord, error)

	// UpsertDayRecord appends day under (owner, monthLabel), creating the
	// record and month bucket as needed. Returns sentinel.ErrConflict when a
	// record for day.Date already exists.
	UpsertDayRecord(ctx context.Context, owner id.OwnerID, monthLabel string, day models.DayRecord) error

	// CloseDayRecord conditionally writes the exit time for (owner, date).
	CloseDayRecord(ctx context.Context, owner id.OwnerID, date string, exitTime string) error
}

// HealthChecker is implemented by stores that can report backend liveness.
type HealthChecker interface {
	Health(ctx context.Context) error
}
