package service

import (
	"context"
	"errors"
	"math"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/audit"
	"rollcall/pkg/platform/sentinel"
	"rollcall/pkg/requestcontext"
)

// ReconcileResult reports what the poll observed. When AutoUpdated is false
// the record was left untouched and RemainingMinutes says how long until the
// threshold.
type ReconcileResult struct {
	AutoUpdated      bool   `json:"autoUpdated"`
	Date             string `json:"date,omitempty"`
	ExitTime         string `json:"exitTime,omitempty"`
	RemainingMinutes int    `json:"remainingMinutes,omitempty"`
}

// Reconcile closes the owner's most recent open day record once a full
// working day has elapsed since entry. It is invoked by client polling; there
// is no background timer, so an overdue record stays open until something
// calls this.
//
// The closing time is pinned to entry + workday, not to the observation time:
// polls arriving minutes or hours late all converge on the same deterministic
// exit value. Entry times carry no date, so the stored string is re-anchored
// to the current calendar date before the comparison.
func (s *Service) Reconcile(ctx context.Context, owner id.OwnerID) (ReconcileResult, error) {
	ctx, span := s.tracer.Start(ctx, "attendance.Reconcile")
	defer span.End()

	if owner.IsZero() {
		return ReconcileResult{}, dErrors.New(dErrors.CodeValidation, "owner id is required")
	}

	_, day, err := s.store.LatestDay(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ReconcileResult{}, dErrors.New(dErrors.CodeNotFound, "no attendance record found")
		}
		return ReconcileResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attendance")
	}
	if !day.IsOpen() {
		return ReconcileResult{}, dErrors.New(dErrors.CodeConflict, "latest attendance entry is already closed")
	}

	now := requestcontext.Now(ctx)
	entry, err := day.Entry(now)
	if err != nil {
		return ReconcileResult{}, err
	}
	threshold := entry.Add(s.workday)

	if now.Before(threshold) {
		remaining := int(math.Ceil(threshold.Sub(now).Minutes()))
		return ReconcileResult{AutoUpdated: false, Date: day.Date, RemainingMinutes: remaining}, nil
	}

	exit := models.FormatTimeOfDay(threshold)
	if err := s.store.CloseDayRecord(ctx, owner, day.Date, exit); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidState):
			// A manual checkout won the race between our read and the write.
			s.incCloseConflict()
			return ReconcileResult{}, dErrors.New(dErrors.CodeConflict, "latest attendance entry is already closed")
		case errors.Is(err, sentinel.ErrNotFound):
			return ReconcileResult{}, dErrors.New(dErrors.CodeNotFound, "no attendance record found")
		default:
			return ReconcileResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to auto-complete attendance")
		}
	}

	if s.metrics != nil {
		s.metrics.AutoCompletions.Inc()
	}
	s.emit(ctx, audit.Event{Owner: owner, Action: audit.ActionAutoCompleted, Date: day.Date})
	s.logger.InfoContext(ctx, "attendance auto-completed",
		"owner", owner.String(),
		"date", day.Date,
		"exit_time", exit,
	)

	return ReconcileResult{AutoUpdated: true, Date: day.Date, ExitTime: exit}, nil
}
