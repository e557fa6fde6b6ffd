package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rollcall/internal/attendance/models"
	"rollcall/internal/attendance/store"
	"rollcall/internal/verify"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/requestcontext"
)

type QuerySuite struct {
	suite.Suite
	store *store.InMemoryStore
	svc   *Service
	ctx   context.Context // pinned to 2026-01-15 2:00 PM
}

func (s *QuerySuite) SetupTest() {
	s.store = store.NewInMemoryStore()
	s.svc = New(s.store, nil, verify.StubVerifier{}, slog.New(slog.DiscardHandler))
	now := time.Date(2026, time.January, 15, 14, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), now)
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(QuerySuite))
}

func (s *QuerySuite) seedDay(date, entry, exit string) {
	day := models.DayRecord{Date: date, EntryTime: entry, Verified: true}
	s.Require().NoError(s.store.UpsertDayRecord(s.ctx, testOwner, "January 2026", day))
	if exit != "" {
		s.Require().NoError(s.store.CloseDayRecord(s.ctx, testOwner, date, exit))
	}
}

func (s *QuerySuite) TestStatus() {
	s.Run("owner with no record gets an empty view", func() {
		view, err := s.svc.Status(s.ctx, testOwner)
		s.Require().NoError(err)
		s.False(view.TodayEntry)
		s.Zero(view.Percentage)
		s.NotNil(view.Records)
		s.Empty(view.Records)
	})

	s.Run("present days drive the monthly percentage", func() {
		s.seedDay("2026-01-13", "9:00 AM", "5:00 PM")
		s.seedDay("2026-01-14", "8:45 AM", "4:45 PM")
		s.seedDay("2026-01-15", "9:10 AM", "")

		view, err := s.svc.Status(s.ctx, testOwner)
		s.Require().NoError(err)
		// 3 present days out of 31 in January, rounded.
		s.Equal(10, view.Percentage)
		s.Len(view.Records, 3)
		s.True(view.TodayEntry, "open record today means checked in")
	})

	s.Run("today closed means no longer checked in", func() {
		s.Require().NoError(s.store.CloseDayRecord(s.ctx, testOwner, "2026-01-15", "5:10 PM"))

		view, err := s.svc.Status(s.ctx, testOwner)
		s.Require().NoError(err)
		s.False(view.TodayEntry)
		s.Equal(10, view.Percentage, "closing a day must not change presence")
	})

	s.Run("validates the owner", func() {
		_, err := s.svc.Status(s.ctx, id.OwnerID(""))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *QuerySuite) TestStatusIgnoresOtherMonths() {
	december := models.DayRecord{Date: "2025-12-31", EntryTime: "9:00 AM", Verified: true}
	s.Require().NoError(s.store.UpsertDayRecord(s.ctx, testOwner, "December 2025", december))

	view, err := s.svc.Status(s.ctx, testOwner)
	s.Require().NoError(err)
	s.Empty(view.Records, "only the current month counts")
	s.Zero(view.Percentage)
}

func (s *QuerySuite) TestCalendar() {
	s.Run("labels the current month even when empty", func() {
		view, err := s.svc.Calendar(s.ctx, testOwner)
		s.Require().NoError(err)
		s.Equal("January 2026", view.MonthLabel)
		s.NotNil(view.Days)
		s.Empty(view.Days)
	})

	s.Run("returns the month's day records", func() {
		s.seedDay("2026-01-14", "8:45 AM", "4:45 PM")
		s.seedDay("2026-01-15", "9:10 AM", "")

		view, err := s.svc.Calendar(s.ctx, testOwner)
		s.Require().NoError(err)
		s.Len(view.Days, 2)
		s.Equal("2026-01-14", view.Days[0].Date)
		s.True(view.Days[1].IsOpen())
	})
}
