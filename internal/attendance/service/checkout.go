package service

import (
	"context"
	"errors"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/audit"
	"rollcall/pkg/platform/sentinel"
	"rollcall/pkg/requestcontext"
)

// CheckOutResult reports the terminal write.
type CheckOutResult struct {
	Date     string `json:"date"`
	ExitTime string `json:"exitTime"`
}

// CheckOut closes today's open day record. The caller supplies proof that a
// prior verification step succeeded; this gate does not re-verify biometrics.
// The close is a conditional write: if auto-completion (or another checkout)
// already set the exit time, the loser gets CodeConflict and the stored value
// stands untouched.
func (s *Service) CheckOut(ctx context.Context, owner id.OwnerID, verified bool) (CheckOutResult, error) {
	ctx, span := s.tracer.Start(ctx, "attendance.CheckOut")
	defer span.End()

	if owner.IsZero() {
		return CheckOutResult{}, dErrors.New(dErrors.CodeValidation, "owner id is required")
	}
	if !verified {
		return CheckOutResult{}, dErrors.New(dErrors.CodeVerificationFailed, "checkout requires a verified identity")
	}

	now := requestcontext.Now(ctx)
	date := models.DateKey(now)
	exit := models.FormatTimeOfDay(now)

	if err := s.store.CloseDayRecord(ctx, owner, date, exit); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return CheckOutResult{}, dErrors.New(dErrors.CodeNotFound, "no check-in found for today")
		case errors.Is(err, sentinel.ErrInvalidState):
			s.incCloseConflict()
			return CheckOutResult{}, dErrors.New(dErrors.CodeConflict, "attendance already checked out for today")
		default:
			return CheckOutResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save checkout")
		}
	}

	if s.metrics != nil {
		s.metrics.CheckOuts.Inc()
	}
	s.emit(ctx, audit.Event{Owner: owner, Action: audit.ActionCheckOut, Date: date})
	s.logger.InfoContext(ctx, "attendance checked out",
		"owner", owner.String(),
		"date", date,
	)

	return CheckOutResult{Date: date, ExitTime: exit}, nil
}

func (s *Service) incCloseConflict() {
	if s.metrics != nil {
		s.metrics.CloseConflicts.Inc()
	}
}
