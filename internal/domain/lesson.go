package domain

import (
	"sort"
)

// BreakSubject is the sentinel subject used for break slots in the timetable.
// Breaks get their own lesson reminders but are excluded from daily summaries
// and the current-lesson progress surface.
const BreakSubject = "Intervallo"

// Lesson is one scheduled class or break occurrence in the weekly timetable.
// DayOfWeek uses the timetable convention Monday=1 .. Sunday=7. StartTime and
// EndTime are zero-padded 24-hour "HH:mm" wall-clock strings, so lexicographic
// comparison orders them correctly.
type Lesson struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Classroom string `json:"classroom"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Color     string `json:"color"`
}

func (l Lesson) IsBreak() bool {
	return l.Subject == BreakSubject
}

// DayName returns the Italian display name for the lesson's day.
func (l Lesson) DayName() string {
	switch l.DayOfWeek {
	case 1:
		return "Lunedì"
	case 2:
		return "Martedì"
	case 3:
		return "Mercoledì"
	case 4:
		return "Giovedì"
	case 5:
		return "Venerdì"
	case 6:
		return "Sabato"
	case 7:
		return "Domenica"
	default:
		return "Sconosciuto"
	}
}

// Duration returns the lesson length in minutes, or 0 when either time
// string is malformed.
func (l Lesson) Duration() int {
	start, err := ClockMinutes(l.StartTime)
	if err != nil {
		return 0
	}
	end, err := ClockMinutes(l.EndTime)
	if err != nil {
		return 0
	}
	return end - start
}

// Catalog is the full ordered set of lessons for a class. Reload semantics are
// whole-list swap: a Catalog value is never mutated in place.
type Catalog []Lesson

// LessonsForDay returns the lessons scheduled on the given timetable day,
// sorted ascending by start time.
func (c Catalog) LessonsForDay(dayOfWeek int) []Lesson {
	lessons := make([]Lesson, 0, len(c))
	for _, lesson := range c {
		if lesson.DayOfWeek == dayOfWeek {
			lessons = append(lessons, lesson)
		}
	}
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].StartTime < lessons[j].StartTime
	})
	return lessons
}

// Subjects returns the distinct non-break subject names in the catalog,
// sorted.
func (c Catalog) Subjects() []string {
	seen := make(map[string]struct{})
	for _, lesson := range c {
		if lesson.IsBreak() {
			continue
		}
		seen[lesson.Subject] = struct{}{}
	}
	subjects := make([]string, 0, len(seen))
	for subject := range seen {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}
