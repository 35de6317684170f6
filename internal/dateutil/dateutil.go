// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//
// All inputs are case-insensitive.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the target weekday after today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay returns true if a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
