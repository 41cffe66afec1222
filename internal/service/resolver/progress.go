package resolver

import (
	"fmt"
	"time"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// Progress describes how far along a lesson is at a given instant. All
// durations are whole minutes.
type Progress struct {
	ElapsedMinutes   int     `json:"elapsed_minutes"`
	RemainingMinutes int     `json:"remaining_minutes"`
	TotalMinutes     int     `json:"total_minutes"`
	Fraction         float64 `json:"fraction"`
}

// Progress computes the elapsed/remaining position of the instant inside the
// lesson's time window. It returns nil (no error) when the instant is outside
// the window, and a typed error when the lesson's time strings are invalid.
func (r *Resolver) Progress(lesson domain.Lesson, at time.Time) (*Progress, error) {
	start, err := domain.ClockMinutesStrict(lesson.StartTime)
	if err != nil {
		return nil, fmt.Errorf("lesson %s: %w", lesson.ID, err)
	}
	end, err := domain.ClockMinutesStrict(lesson.EndTime)
	if err != nil {
		return nil, fmt.Errorf("lesson %s: %w", lesson.ID, err)
	}

	minutes := domain.MinutesOfDay(at)
	if domain.TimetableDay(at) != lesson.DayOfWeek || minutes < start || minutes >= end {
		return nil, nil
	}

	total := end - start
	elapsed := minutes - start

	return &Progress{
		ElapsedMinutes:   elapsed,
		RemainingMinutes: end - minutes,
		TotalMinutes:     total,
		Fraction:         float64(elapsed) / float64(total),
	}, nil
}
