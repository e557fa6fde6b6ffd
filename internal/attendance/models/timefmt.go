package models

import (
	"time"

	dErrors "rollcall/pkg/domain-errors"
)

// Stored formats. These match the record layout consumed by existing clients:
// 12-hour clock times, ISO dates, human-readable month labels.
const (
	timeOfDayLayout  = "3:04 PM"
	dateKeyLayout    = "2006-01-02"
	monthLabelLayout = "January 2006"
)

// FormatTimeOfDay renders a wall-clock instant as a stored time-of-day string.
func FormatTimeOfDay(t time.Time) string { return t.Format(timeOfDayLayout) }

// DateKey renders the calendar date used to key day records within a month.
func DateKey(t time.Time) string { return t.Format(dateKeyLayout) }

// MonthLabel renders the label used to key month blocks.
func MonthLabel(t time.Time) string { return t.Format(monthLabelLayout) }

// ParseTimeOfDay parses a stored time-of-day string and anchors it to the
// calendar date of ref, in ref's location. Anchoring is mandatory before any
// duration comparison: the stored strings wrap every 12 hours and carry no
// date component of their own.
func ParseTimeOfDay(s string, ref time.Time) (time.Time, error) {
	parsed, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		// Tolerate a missing space before the meridiem ("9:00AM"), which the
		// source system produced for some locales.
		parsed, err = time.Parse("3:04PM", s)
		if err != nil {
			return time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "malformed stored entry time")
		}
	}
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		ref.Location(),
	), nil
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
