package models

import (
	"time"

	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
)

// MarkMethod records how presence was proven. Only face verification is
// implemented; the field exists so stored records stay self-describing.
type MarkMethod string

const MarkMethodFace MarkMethod = "face"

// DayRecord is the unit of the attendance state machine: one entry per owner
// per calendar date.
//
// Invariants:
//   - EntryTime is set exactly once, at creation.
//   - ExitTime is write-once: empty while the day is open, immutable after
//     the first successful close.
//   - ExitTime set implies EntryTime set and EntryTime <= ExitTime on the
//     same calendar day.
//
// A record is created only by check-in, closed at most once (manual checkout
// or auto-completion, whichever wins the conditional write), never deleted.
type DayRecord struct {
	Date      string `json:"date"`               // YYYY-MM-DD
	EntryTime string `json:"entryTime"`          // "h:mm AM"
	ExitTime  string `json:"exitTime,omitempty"` // "h:mm AM", empty while open
	Verified  bool   `json:"verified"`
}

// IsOpen reports whether the record still lacks an exit time.
func (d *DayRecord) IsOpen() bool { return d.ExitTime == "" }

// CanClose checks whether the record accepts a terminal write.
// Use with ApplyClose inside store Execute callbacks so validation and
// mutation happen under the same lock.
func (d *DayRecord) CanClose() error {
	if !d.IsOpen() {
		return dErrors.New(dErrors.CodeConflict, "attendance already checked out for this day")
	}
	return nil
}

// ApplyClose sets the exit time. Call CanClose first; ApplyClose itself does
// not re-validate.
func (d *DayRecord) ApplyClose(exit time.Time) {
	d.ExitTime = FormatTimeOfDay(exit)
}

// Entry returns the entry time anchored to the given reference date.
// Time-of-day strings wrap and carry no date, so comparisons against "now"
// must re-anchor them to the same day first.
func (d *DayRecord) Entry(ref time.Time) (time.Time, error) {
	return ParseTimeOfDay(d.EntryTime, ref)
}

// MonthBlock groups an owner's day records for one calendar month.
// Lookup is by label equality; entry order within Days is insertion order.
type MonthBlock struct {
	Label string       `json:"label"` // "January 2026"
	Days  []*DayRecord `json:"days"`
}

// Day returns the record for the given date key, or nil.
func (m *MonthBlock) Day(date string) *DayRecord {
	for _, d := range m.Days {
		if d.Date == date {
			return d
		}
	}
	return nil
}

// LatestDay returns the most recently appended day record, or nil when the
// block is empty. Day records are append-only, so the last element is the
// most recent check-in.
func (m *MonthBlock) LatestDay() *DayRecord {
	if len(m.Days) == 0 {
		return nil
	}
	return m.Days[len(m.Days)-1]
}

// AttendanceRecord is the aggregate root: one per owner, holding every month
// the owner has ever checked in.
type AttendanceRecord struct {
	Owner  id.OwnerID    `json:"owner"`
	Months []*MonthBlock `json:"months"`
	Method MarkMethod    `json:"method"`
}

// NewAttendanceRecord creates an empty record for an owner.
func NewAttendanceRecord(owner id.OwnerID) *AttendanceRecord {
	return &AttendanceRecord{Owner: owner, Method: MarkMethodFace}
}

// Month returns the block with the given label, or nil.
func (r *AttendanceRecord) Month(label string) *MonthBlock {
	for _, m := range r.Months {
		if m.Label == label {
			return m
		}
	}
	return nil
}

// EnsureMonth returns the block with the given label, appending an empty one
// if absent. Labels derive from the record's own dates, never from "now", so
// historical months stay stable.
func (r *AttendanceRecord) EnsureMonth(label string) *MonthBlock {
	if m := r.Month(label); m != nil {
		return m
	}
	m := &MonthBlock{Label: label}
	r.Months = append(r.Months, m)
	return m
}

// LatestDay walks months newest-first and returns the most recent day record
// along with its month label. Reconciliation operates on this record whether
// or not it is still open; deciding what "closed" means is the caller's job.
func (r *AttendanceRecord) LatestDay() (string, *DayRecord) {
	for i := len(r.Months) - 1; i >= 0; i-- {
		m := r.Months[i]
		if d := m.LatestDay(); d != nil {
			return m.Label, d
		}
	}
	return "", nil
}
