package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rollcall/internal/attendance/service/mocks"
	"rollcall/internal/attendance/store"
	"rollcall/internal/verify"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/requestcontext"
)

const testOwner = id.OwnerID("worker@example.com")

// verdictVerifier returns a fixed verdict, for threshold boundary tests.
type verdictVerifier struct {
	result verify.Result
	err    error
}

func (v verdictVerifier) Compare(context.Context, []byte, string) (verify.Result, error) {
	return v.result, v.err
}

type ServiceSuite struct {
	suite.Suite
	store    *store.InMemoryStore
	accounts *mocks.MockReferenceResolver
	svc      *Service
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.store = store.NewInMemoryStore()
	s.accounts = mocks.NewMockReferenceResolver(ctrl)
	s.accounts.EXPECT().ReferenceImage(gomock.Any(), gomock.Any()).Return("stored-reference", nil).AnyTimes()
	s.svc = New(s.store, s.accounts, verify.StubVerifier{Distance: 0.2}, slog.New(slog.DiscardHandler))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// at builds a context whose clock is pinned to the given wall-clock moment on
// 2026-01-15.
func (s *ServiceSuite) at(hour, minute int) context.Context {
	t := time.Date(2026, time.January, 15, hour, minute, 0, 0, time.UTC)
	return requestcontext.WithTime(context.Background(), t)
}

func (s *ServiceSuite) withVerifier(v verify.Verifier) {
	s.svc = New(s.store, s.accounts, v, slog.New(slog.DiscardHandler))
}

func (s *ServiceSuite) TestCheckIn() {
	s.Run("creates today's record with the request time", func() {
		result, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.Require().NoError(err)
		s.Equal("January 2026", result.MonthLabel)
		s.Equal("2026-01-15", result.Date)
		s.Equal("9:00 AM", result.EntryTime)
		s.True(result.Verified)

		day, err := s.store.FindDayRecord(context.Background(), testOwner, "2026-01-15")
		s.Require().NoError(err)
		s.True(day.IsOpen())
	})

	s.Run("second check-in the same day is a conflict", func() {
		_, err := s.svc.CheckIn(s.at(10, 30), testOwner, []byte("live-sample"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		// The original entry survives.
		day, err := s.store.FindDayRecord(context.Background(), testOwner, "2026-01-15")
		s.Require().NoError(err)
		s.Equal("9:00 AM", day.EntryTime)
	})

	s.Run("validates inputs before touching collaborators", func() {
		_, err := s.svc.CheckIn(s.at(9, 0), "", []byte("live-sample"))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.svc.CheckIn(s.at(9, 0), testOwner, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestCheckInVerificationGate() {
	s.Run("mismatch is rejected and nothing is stored", func() {
		s.withVerifier(verify.StubVerifier{Distance: 0.9})

		_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("impostor"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeVerificationFailed))

		_, err = s.store.FindRecord(context.Background(), testOwner)
		s.Require().Error(err, "a rejected check-in must not create a record")
	})

	s.Run("distance at the threshold is accepted", func() {
		s.withVerifier(verdictVerifier{result: verify.Result{Success: true, Match: true, Distance: 0.45}})

		_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.Require().NoError(err)
	})

	s.Run("distance above the threshold is rejected even when matched", func() {
		s.withVerifier(verdictVerifier{result: verify.Result{Success: true, Match: true, Distance: 0.46}})

		_, err := s.svc.CheckIn(s.at(9, 0), id.OwnerID("worker2@example.com"), []byte("live-sample"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeVerificationFailed))
	})

	s.Run("unsuccessful comparison is rejected regardless of distance", func() {
		s.withVerifier(verdictVerifier{result: verify.Result{Success: false, Match: true, Distance: 0.1}})

		_, err := s.svc.CheckIn(s.at(9, 0), id.OwnerID("worker2@example.com"), []byte("live-sample"))
		s.True(dErrors.HasCode(err, dErrors.CodeVerificationFailed))
	})

	s.Run("collaborator timeout maps to a timeout error", func() {
		s.withVerifier(verdictVerifier{err: context.DeadlineExceeded})

		_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Run("missing reference image fails before verification", func() {
		ctrl := gomock.NewController(s.T())
		accounts := mocks.NewMockReferenceResolver(ctrl)
		accounts.EXPECT().ReferenceImage(gomock.Any(), testOwner).
			Return("", dErrors.New(dErrors.CodeNotFound, "no reference image on file"))
		svc := New(s.store, accounts, verify.StubVerifier{Distance: 0.2}, slog.New(slog.DiscardHandler))

		_, err := svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestCheckOut() {
	s.Run("closes today's open record at the request time", func() {
		_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.Require().NoError(err)

		result, err := s.svc.CheckOut(s.at(17, 30), testOwner, true)
		s.Require().NoError(err)
		s.Equal("2026-01-15", result.Date)
		s.Equal("5:30 PM", result.ExitTime)
	})

	s.Run("second checkout is a conflict and the exit time stands", func() {
		_, err := s.svc.CheckOut(s.at(18, 0), testOwner, true)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		day, err := s.store.FindDayRecord(context.Background(), testOwner, "2026-01-15")
		s.Require().NoError(err)
		s.Equal("5:30 PM", day.ExitTime)
	})

	s.Run("rejects an unverified caller", func() {
		_, err := s.svc.CheckOut(s.at(17, 0), testOwner, false)
		s.True(dErrors.HasCode(err, dErrors.CodeVerificationFailed))
	})

	s.Run("checkout without a check-in is not found", func() {
		_, err := s.svc.CheckOut(s.at(17, 0), id.OwnerID("worker2@example.com"), true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestReconcile() {
	s.Run("leaves a young record open and reports remaining minutes", func() {
		_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.Require().NoError(err)

		result, err := s.svc.Reconcile(s.at(16, 59), testOwner)
		s.Require().NoError(err)
		s.False(result.AutoUpdated)
		s.Equal(1, result.RemainingMinutes)

		day, err := s.store.FindDayRecord(context.Background(), testOwner, "2026-01-15")
		s.Require().NoError(err)
		s.True(day.IsOpen())
	})

	s.Run("closes at entry plus workday, not at the observation time", func() {
		result, err := s.svc.Reconcile(s.at(18, 30), testOwner)
		s.Require().NoError(err)
		s.True(result.AutoUpdated)
		s.Equal("5:00 PM", result.ExitTime, "late polls must converge on the same exit time")
	})

	s.Run("a second reconcile is a conflict", func() {
		_, err := s.svc.Reconcile(s.at(19, 0), testOwner)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		day, err := s.store.FindDayRecord(context.Background(), testOwner, "2026-01-15")
		s.Require().NoError(err)
		s.Equal("5:00 PM", day.ExitTime)
	})

	s.Run("no record at all is not found", func() {
		_, err := s.svc.Reconcile(s.at(19, 0), id.OwnerID("worker2@example.com"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestReconcileBoundaries() {
	s.Run("closes exactly at the threshold", func() {
		_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
		s.Require().NoError(err)

		result, err := s.svc.Reconcile(s.at(17, 0), testOwner)
		s.Require().NoError(err)
		s.True(result.AutoUpdated)
		s.Equal("5:00 PM", result.ExitTime)
	})

	s.Run("honors a custom workday duration", func() {
		other := id.OwnerID("worker2@example.com")
		ctrl := gomock.NewController(s.T())
		accounts := mocks.NewMockReferenceResolver(ctrl)
		accounts.EXPECT().ReferenceImage(gomock.Any(), other).Return("stored-reference", nil)
		svc := New(s.store, accounts, verify.StubVerifier{Distance: 0.2}, slog.New(slog.DiscardHandler),
			WithWorkday(4*time.Hour))

		_, err := svc.CheckIn(s.at(8, 0), other, []byte("live-sample"))
		s.Require().NoError(err)

		result, err := svc.Reconcile(s.at(13, 0), other)
		s.Require().NoError(err)
		s.True(result.AutoUpdated)
		s.Equal("12:00 PM", result.ExitTime)
	})
}

// TestCheckOutReconcileRace races a manual checkout against the poll once the
// record is overdue. Exactly one write wins; the loser sees a conflict and
// the stored exit time belongs to the winner.
func (s *ServiceSuite) TestCheckOutReconcileRace() {
	_, err := s.svc.CheckIn(s.at(9, 0), testOwner, []byte("live-sample"))
	s.Require().NoError(err)

	ctx := s.at(18, 0)
	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = s.svc.CheckOut(ctx, testOwner, true)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = s.svc.Reconcile(ctx, testOwner)
	}()
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			s.True(dErrors.HasCode(err, dErrors.CodeConflict), "loser must see a conflict, got %v", err)
		}
	}
	s.Equal(1, winners)

	day, err := s.store.FindDayRecord(context.Background(), testOwner, "2026-01-15")
	s.Require().NoError(err)
	s.Contains([]string{"5:00 PM", "6:00 PM"}, day.ExitTime)
}
