package service

import (
	"context"
	"errors"
	"math"
	"time"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/sentinel"
	"rollcall/pkg/requestcontext"
)

// StatusView combines the presence flag, the current-month percentage and the
// month's records, which clients render together.
type StatusView struct {
	TodayEntry bool                `json:"todayEntry"`
	Percentage int                 `json:"percentage"`
	Records    []*models.DayRecord `json:"records"`
}

// CalendarView returns the current month's day records verbatim. Classifying
// days (worked, holiday, future) is a presentation concern left to clients.
type CalendarView struct {
	MonthLabel string              `json:"month"`
	Days       []*models.DayRecord `json:"days"`
}

// Status is the read-side view over the current month. An owner with no
// record at all is a valid state: zero percentage, not checked in, no records.
func (s *Service) Status(ctx context.Context, owner id.OwnerID) (StatusView, error) {
	ctx, span := s.tracer.Start(ctx, "attendance.Status")
	defer span.End()
	start := time.Now()
	defer s.observeQuery(start)

	if owner.IsZero() {
		return StatusView{}, dErrors.New(dErrors.CodeValidation, "owner id is required")
	}

	month, err := s.currentMonth(ctx, owner)
	if err != nil {
		return StatusView{}, err
	}

	now := requestcontext.Now(ctx)
	view := StatusView{Records: []*models.DayRecord{}}
	if month == nil {
		return view, nil
	}
	view.Records = month.Days

	present := 0
	for _, d := range month.Days {
		if d.EntryTime != "" {
			present++
		}
	}
	view.Percentage = int(math.Round(float64(present) / float64(models.DaysInMonth(now)) * 100))

	if today := month.Day(models.DateKey(now)); today != nil {
		view.TodayEntry = today.EntryTime != "" && today.IsOpen()
	}
	return view, nil
}

// Calendar returns the current month's records for client-side rendering.
func (s *Service) Calendar(ctx context.Context, owner id.OwnerID) (CalendarView, error) {
	ctx, span := s.tracer.Start(ctx, "attendance.Calendar")
	defer span.End()
	start := time.Now()
	defer s.observeQuery(start)

	if owner.IsZero() {
		return CalendarView{}, dErrors.New(dErrors.CodeValidation, "owner id is required")
	}

	now := requestcontext.Now(ctx)
	view := CalendarView{MonthLabel: models.MonthLabel(now), Days: []*models.DayRecord{}}

	month, err := s.currentMonth(ctx, owner)
	if err != nil {
		return CalendarView{}, err
	}
	if month != nil {
		view.Days = month.Days
	}
	return view, nil
}

// currentMonth loads the owner's block for the current month label. A missing
// record or missing month both come back nil: absence is not an error on the
// read side.
func (s *Service) currentMonth(ctx context.Context, owner id.OwnerID) (*models.MonthBlock, error) {
	rec, err := s.store.FindRecord(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attendance")
	}
	return rec.Month(models.MonthLabel(requestcontext.Now(ctx))), nil
}

func (s *Service) observeQuery(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveQuery(start)
	}
}
