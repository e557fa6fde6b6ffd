package store

import (
	"context"
	"sync"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

// InMemoryStore keeps attendance records in process memory. A single RWMutex
// guards the whole map; records are independent per owner, so contention is
// bounded by how often the same owner races checkout against reconcile, which
// is exactly the race the conditional close serializes.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.OwnerID]*models.AttendanceRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.OwnerID]*models.AttendanceRecord)}
}

func (s *InMemoryStore) FindRecord(_ context.Context, owner id.OwnerID) (*models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[owner]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *InMemoryStore) FindDayRecord(_ context.Context, owner id.OwnerID, date string) (*models.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := s.findDayLocked(owner, date)
	if day == nil {
		return nil, sentinel.ErrNotFound
	}
	copied := *day
	return &copied, nil
}

func (s *InMemoryStore) LatestDay(_ context.Context, owner id.OwnerID) (string, *models.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[owner]
	if !ok {
		return "", nil, sentinel.ErrNotFound
	}
	label, day := rec.LatestDay()
	if day == nil {
		return "", nil, sentinel.ErrNotFound
	}
	copied := *day
	return label, &copied, nil
}

func (s *InMemoryStore) UpsertDayRecord(_ context.Context, owner id.OwnerID, monthLabel string, day models.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findDayLocked(owner, day.Date) != nil {
		return sentinel.ErrConflict
	}
	rec, ok := s.records[owner]
	if !ok {
		rec = models.NewAttendanceRecord(owner)
		s.records[owner] = rec
	}
	month := rec.EnsureMonth(monthLabel)
	month.Days = append(month.Days, &day)
	return nil
}

func (s *InMemoryStore) CloseDayRecord(_ context.Context, owner id.OwnerID, date string, exitTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.findDayLocked(owner, date)
	if day == nil {
		return sentinel.ErrNotFound
	}
	// Conditional write: the exit time is set at most once, under the lock.
	if !day.IsOpen() {
		return sentinel.ErrInvalidState
	}
	day.ExitTime = exitTime
	return nil
}

func (s *InMemoryStore) Health(context.Context) error { return nil }

// findDayLocked scans every month for the date key. Dates are unique across
// months by construction, so the first hit is the only hit.
// Caller must hold s.mu.
func (s *InMemoryStore) findDayLocked(owner id.OwnerID, date string) *models.DayRecord {
	rec, ok := s.records[owner]
	if !ok {
		return nil
	}
	for _, m := range rec.Months {
		if d := m.Day(date); d != nil {
			return d
		}
	}
	return nil
}

// cloneRecord deep-copies an aggregate so readers can never alias the stored
// day records across the lock boundary.
func cloneRecord(rec *models.AttendanceRecord) *models.AttendanceRecord {
	out := &models.AttendanceRecord{Owner: rec.Owner, Method: rec.Method}
	out.Months = make([]*models.MonthBlock, 0, len(rec.Months))
	for _, m := range rec.Months {
		month := &models.MonthBlock{Label: m.Label, Days: make([]*models.DayRecord, 0, len(m.Days))}
		for _, d := range m.Days {
			copied := *d
			month.Days = append(month.Days, &copied)
		}
		out.Months = append(out.Months, month)
	}
	return out
}
