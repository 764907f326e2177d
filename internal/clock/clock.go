// Package clock turns wall clock time into the hour and minute slot the
// verse lookup is keyed on.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// Source provides the current time.
type Source interface {
	Now() time.Time
}

// System reads the wall clock, optionally in a fixed location.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	now := time.Now()
	if s.Location != nil {
		return now.In(s.Location)
	}
	return now
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// Slot is an hour on a 12 hour dial and a minute.
type Slot struct {
	Hour   int
	Minute int
}

func (s Slot) String() string {
	return fmt.Sprintf("%d:%02d", s.Hour, s.Minute)
}

// SlotOf maps a time onto the 12 hour dial, so both 00:xx and 12:xx are hour 12.
func SlotOf(t time.Time) Slot {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return Slot{Hour: hour, Minute: t.Minute()}
}

// Normalize folds an arbitrary hour and minute into the valid slot range.
func Normalize(hour, minute int) Slot {
	hour %= 12
	if hour <= 0 {
		hour += 12
	}
	minute = max(0, min(minute, 59))
	return Slot{Hour: hour, Minute: minute}
}

// ParseTwelveHour parses "2:37 PM" (or "14:37") onto the given day.
func ParseTwelveHour(value string, day time.Time) (time.Time, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	layouts := []string{"3:04 PM", "3:04PM", "15:04"}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected a format like \"2:37 PM\"", value)
}

// FormatTwelveHour renders the display time, e.g. "3:16 PM".
func FormatTwelveHour(t time.Time) string {
	return t.Format("3:04 PM")
}

// ParseDate parses an ISO date (2006-01-02) in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.ParseInLocation(%q) > %w", value, err)
	}
	return t, nil
}
