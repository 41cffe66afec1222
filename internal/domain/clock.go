package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SplitClock parses a "HH:mm" string into its hour and minute components.
// This is the lenient variant used by the resolver's skip-and-continue paths:
// it rejects malformed strings but does not range-check the values.
func SplitClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}

	return hour, minute, nil
}

// ClockMinutes converts a "HH:mm" string to minutes since midnight.
func ClockMinutes(value string) (int, error) {
	hour, minute, err := SplitClock(value)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// ClockMinutesStrict is the widget-facing variant of ClockMinutes: it
// additionally requires 0 <= hour < 24 and 0 <= minute < 60.
func ClockMinutesStrict(value string) (int, error) {
	hour, minute, err := SplitClock(value)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeRange, value)
	}
	return hour*60 + minute, nil
}

// CalendarWeekday converts a timetable day (Monday=1 .. Sunday=7) to the
// calendar weekday numbering used by recurring triggers (Sunday=1 ..
// Saturday=7).
func CalendarWeekday(dayOfWeek int) int {
	return (dayOfWeek % 7) + 1
}

// InternalWeekday converts a calendar weekday (Sunday=1 .. Saturday=7) to the
// timetable convention (Monday=1 .. Sunday=7).
func InternalWeekday(weekday int) int {
	if weekday == 1 {
		return 7
	}
	return weekday - 1
}

// TimetableDay returns the timetable day (Monday=1 .. Sunday=7) for t.
func TimetableDay(t time.Time) int {
	return InternalWeekday(int(t.Weekday()) + 1)
}

// MinutesOfDay returns t's wall-clock position as minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
