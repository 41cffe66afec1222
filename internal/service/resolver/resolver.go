package resolver

import (
	"fmt"
	"time"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// Resolver answers "what lesson is happening / next" at a given instant. It
// is a pure function of the catalog snapshot and the instant; callers may
// query it concurrently with a planning pass as long as each invocation gets
// an immutable snapshot.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// CurrentLesson returns the lesson containing the instant, or nil. Lessons
// with malformed time strings are skipped rather than failing the query.
// Well-formed catalogs have no overlapping lessons; if they do overlap, the
// first match in catalog order wins.
func (r *Resolver) CurrentLesson(catalog domain.Catalog, at time.Time) *domain.Lesson {
	day := domain.TimetableDay(at)
	minutes := domain.MinutesOfDay(at)

	for _, lesson := range catalog {
		if lesson.DayOfWeek != day {
			continue
		}
		start, err := domain.ClockMinutes(lesson.StartTime)
		if err != nil {
			continue
		}
		end, err := domain.ClockMinutes(lesson.EndTime)
		if err != nil {
			continue
		}
		if minutes >= start && minutes < end {
			found := lesson
			return &found
		}
	}
	return nil
}

// CurrentLessonStrict is the widget-facing variant of CurrentLesson: instead
// of silently skipping a lesson with an invalid time string, it reports a
// typed error for the first offending lesson on the queried day.
func (r *Resolver) CurrentLessonStrict(catalog domain.Catalog, at time.Time) (*domain.Lesson, error) {
	day := domain.TimetableDay(at)
	minutes := domain.MinutesOfDay(at)

	for _, lesson := range catalog {
		if lesson.DayOfWeek != day {
			continue
		}
		start, err := domain.ClockMinutesStrict(lesson.StartTime)
		if err != nil {
			return nil, fmt.Errorf("lesson %s: %w", lesson.ID, err)
		}
		end, err := domain.ClockMinutesStrict(lesson.EndTime)
		if err != nil {
			return nil, fmt.Errorf("lesson %s: %w", lesson.ID, err)
		}
		if minutes >= start && minutes < end {
			found := lesson
			return &found, nil
		}
	}
	return nil, nil
}

// NextLesson returns the first lesson today starting strictly after the
// instant, or nil when no lesson remains today. It deliberately does not roll
// over to the next day; see NextLessonRollover for the widget behavior.
func (r *Resolver) NextLesson(catalog domain.Catalog, at time.Time) *domain.Lesson {
	day := domain.TimetableDay(at)
	minutes := domain.MinutesOfDay(at)

	for _, lesson := range catalog.LessonsForDay(day) {
		start, err := domain.ClockMinutes(lesson.StartTime)
		if err != nil {
			continue
		}
		if start > minutes {
			found := lesson
			return &found
		}
	}
	return nil
}

// NextLessonRollover behaves like NextLesson but, when today is exhausted,
// returns the first lesson of the following school day. The rotation matches
// the timetable widget: Friday rolls over to Monday, other days to the next
// day.
func (r *Resolver) NextLessonRollover(catalog domain.Catalog, at time.Time) *domain.Lesson {
	if lesson := r.NextLesson(catalog, at); lesson != nil {
		return lesson
	}

	day := domain.TimetableDay(at)
	tomorrow := day + 1
	if day == 5 {
		tomorrow = 1
	}

	lessons := catalog.LessonsForDay(tomorrow)
	if len(lessons) == 0 {
		return nil
	}
	found := lessons[0]
	return &found
}
