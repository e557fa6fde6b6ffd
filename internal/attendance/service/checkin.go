package service

import (
	"context"
	"errors"
	"time"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/audit"
	"rollcall/pkg/platform/sentinel"
	"rollcall/pkg/requestcontext"
)

// CheckInResult reports where the new day record landed.
type CheckInResult struct {
	MonthLabel string `json:"month"`
	Date       string `json:"date"`
	EntryTime  string `json:"entryTime"`
	Verified   bool   `json:"verified"`
}

// CheckIn runs the verification-gated check-in. The face comparison happens
// before any store access so an impostor never learns whether the owner has
// already marked today. Creation is idempotent per (owner, date): a second
// check-in on the same day returns CodeConflict and leaves the record alone.
func (s *Service) CheckIn(ctx context.Context, owner id.OwnerID, liveSample []byte) (CheckInResult, error) {
	ctx, span := s.tracer.Start(ctx, "attendance.CheckIn")
	defer span.End()
	start := time.Now()

	if owner.IsZero() {
		return CheckInResult{}, dErrors.New(dErrors.CodeValidation, "owner id is required")
	}
	if len(liveSample) == 0 {
		return CheckInResult{}, dErrors.New(dErrors.CodeValidation, "a live face sample is required")
	}

	reference, err := s.accounts.ReferenceImage(ctx, owner)
	if err != nil {
		return CheckInResult{}, err
	}

	if err := s.verifyFace(ctx, owner, liveSample, reference); err != nil {
		return CheckInResult{}, err
	}

	now := requestcontext.Now(ctx)
	day := models.DayRecord{
		Date:      models.DateKey(now),
		EntryTime: models.FormatTimeOfDay(now),
		Verified:  true,
	}
	label := models.MonthLabel(now)

	if err := s.store.UpsertDayRecord(ctx, owner, label, day); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.incDuplicateCheckIn()
			s.emit(ctx, audit.Event{Owner: owner, Action: audit.ActionDuplicateCheckIn, Date: day.Date})
			return CheckInResult{}, dErrors.New(dErrors.CodeConflict, "attendance already marked for today")
		}
		return CheckInResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save attendance")
	}

	s.incCheckIn(start)
	s.emit(ctx, audit.Event{Owner: owner, Action: audit.ActionCheckIn, Date: day.Date})
	s.logger.InfoContext(ctx, "attendance marked",
		"owner", owner.String(),
		"date", day.Date,
	)

	return CheckInResult{
		MonthLabel: label,
		Date:       day.Date,
		EntryTime:  day.EntryTime,
		Verified:   true,
	}, nil
}

// verifyFace calls the collaborator with a bounded timeout and applies the
// acceptance contract: success, match, and distance at or under the
// threshold. Errors and timeouts are hard failures, never retried; a retry
// needs a fresh sample from the user.
func (s *Service) verifyFace(ctx context.Context, owner id.OwnerID, liveSample []byte, reference string) error {
	vctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	result, err := s.verifier.Compare(vctx, liveSample, reference)
	if err != nil {
		s.incVerificationFailure()
		s.emit(ctx, audit.Event{Owner: owner, Action: audit.ActionVerificationFailed, Detail: "collaborator error"})
		if errors.Is(err, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "face verification timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeVerificationFailed, "face verification unavailable")
	}

	if !result.Success || !result.Match || result.Distance > s.matchThreshold {
		s.incVerificationFailure()
		s.emit(ctx, audit.Event{Owner: owner, Action: audit.ActionVerificationFailed, Detail: "mismatch"})
		s.logger.WarnContext(ctx, "face verification rejected",
			"owner", owner.String(),
			"match", result.Match,
			"distance", result.Distance,
		)
		return dErrors.New(dErrors.CodeVerificationFailed, "face does not match the stored reference")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, event)
	}
}

func (s *Service) incCheckIn(start time.Time) {
	if s.metrics != nil {
		s.metrics.CheckIns.Inc()
		s.metrics.ObserveCheckIn(start)
	}
}

func (s *Service) incDuplicateCheckIn() {
	if s.metrics != nil {
		s.metrics.DuplicateCheckIns.Inc()
	}
}

func (s *Service) incVerificationFailure() {
	if s.metrics != nil {
		s.metrics.VerificationFailures.Inc()
	}
}
