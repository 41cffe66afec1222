package resolver

import (
	"errors"
	"testing"
	"time"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// monday..sunday anchor dates for building query instants.
func at(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()

	// 2025-03-03 is a Monday; adding day-1 days lands on the wanted
	// timetable day.
	return time.Date(2025, 3, 3+day-1, hour, minute, 0, 0, time.UTC)
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "mat", Subject: "Matematica", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
		{ID: "ita", Subject: "Italiano", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: "int", Subject: "Intervallo", DayOfWeek: 1, StartTime: "10:00", EndTime: "10:15"},
		{ID: "sto", Subject: "Storia", DayOfWeek: 2, StartTime: "08:00", EndTime: "09:00"},
		{ID: "fis", Subject: "Fisica", DayOfWeek: 5, StartTime: "11:00", EndTime: "12:00"},
	}
}

func TestResolver_CurrentLesson_Containment(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()

	tests := []struct {
		name   string
		at     time.Time
		wantID string
	}{
		{name: "at start", at: at(t, 1, 8, 0), wantID: "mat"},
		{name: "mid lesson", at: at(t, 1, 8, 30), wantID: "mat"},
		{name: "end is exclusive, next starts", at: at(t, 1, 9, 0), wantID: "ita"},
		{name: "break counts as lesson", at: at(t, 1, 10, 5), wantID: "int"},
		{name: "before school", at: at(t, 1, 7, 59), wantID: ""},
		{name: "after last lesson", at: at(t, 1, 10, 15), wantID: ""},
		{name: "other day", at: at(t, 3, 8, 30), wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.CurrentLesson(catalog, tt.at)
			if tt.wantID == "" {
				if got != nil {
					t.Errorf("CurrentLesson = %v, want nil", got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Errorf("CurrentLesson = %v, want %s", got, tt.wantID)
			}
		})
	}
}

func TestResolver_CurrentLesson_SkipsMalformedTimes(t *testing.T) {
	r := NewResolver()
	catalog := domain.Catalog{
		{ID: "bad", Subject: "Storia", DayOfWeek: 1, StartTime: "broken", EndTime: "09:00"},
		{ID: "good", Subject: "Matematica", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
	}

	got := r.CurrentLesson(catalog, at(t, 1, 8, 30))
	if got == nil || got.ID != "good" {
		t.Errorf("CurrentLesson = %v, want good", got)
	}
}

func TestResolver_CurrentLessonStrict_ReportsInvalidTime(t *testing.T) {
	r := NewResolver()
	catalog := domain.Catalog{
		{ID: "bad", Subject: "Storia", DayOfWeek: 1, StartTime: "25:00", EndTime: "09:00"},
	}

	_, err := r.CurrentLessonStrict(catalog, at(t, 1, 8, 30))
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Errorf("CurrentLessonStrict error = %v, want ErrInvalidTimeRange", err)
	}

	// Lessons on other days are not inspected.
	otherDay := domain.Catalog{
		{ID: "bad", Subject: "Storia", DayOfWeek: 2, StartTime: "25:00", EndTime: "09:00"},
	}
	lesson, err := r.CurrentLessonStrict(otherDay, at(t, 1, 8, 30))
	if err != nil {
		t.Errorf("CurrentLessonStrict error = %v", err)
	}
	if lesson != nil {
		t.Errorf("CurrentLessonStrict = %v, want nil", lesson)
	}
}

func TestResolver_NextLesson_TodayOnly(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()

	got := r.NextLesson(catalog, at(t, 1, 8, 30))
	if got == nil || got.ID != "ita" {
		t.Errorf("NextLesson = %v, want ita", got)
	}

	// Start strictly after: a lesson starting exactly now is not "next".
	got = r.NextLesson(catalog, at(t, 1, 9, 0))
	if got == nil || got.ID != "int" {
		t.Errorf("NextLesson = %v, want int", got)
	}

	// No rollover to tomorrow.
	if got := r.NextLesson(catalog, at(t, 1, 18, 0)); got != nil {
		t.Errorf("NextLesson after last lesson = %v, want nil", got.ID)
	}
}

func TestResolver_NextLessonRollover(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()

	// Monday evening rolls to Tuesday's first lesson.
	got := r.NextLessonRollover(catalog, at(t, 1, 18, 0))
	if got == nil || got.ID != "sto" {
		t.Errorf("NextLessonRollover = %v, want sto", got)
	}

	// Friday evening rolls to Monday.
	got = r.NextLessonRollover(catalog, at(t, 5, 18, 0))
	if got == nil || got.ID != "mat" {
		t.Errorf("NextLessonRollover from friday = %v, want mat", got)
	}

	// Remaining lessons today still win.
	got = r.NextLessonRollover(catalog, at(t, 5, 10, 0))
	if got == nil || got.ID != "fis" {
		t.Errorf("NextLessonRollover midday = %v, want fis", got)
	}
}

func TestResolver_Progress(t *testing.T) {
	r := NewResolver()
	lesson := domain.Lesson{ID: "mat", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"}

	progress, err := r.Progress(lesson, at(t, 1, 8, 45))
	if err != nil {
		t.Fatalf("Progress error = %v", err)
	}
	if progress == nil {
		t.Fatal("Progress = nil, want value inside window")
	}
	if progress.ElapsedMinutes != 45 || progress.RemainingMinutes != 15 || progress.TotalMinutes != 60 {
		t.Errorf("Progress = %+v, want 45 elapsed / 15 remaining / 60 total", progress)
	}
	if progress.Fraction != 0.75 {
		t.Errorf("Fraction = %v, want 0.75", progress.Fraction)
	}
}

func TestResolver_Progress_OutsideWindow(t *testing.T) {
	r := NewResolver()
	lesson := domain.Lesson{ID: "mat", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"}

	tests := []struct {
		name string
		at   time.Time
	}{
		{name: "before start", at: at(t, 1, 7, 59)},
		{name: "at end", at: at(t, 1, 9, 0)},
		{name: "wrong day", at: at(t, 2, 8, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, err := r.Progress(lesson, tt.at)
			if err != nil {
				t.Fatalf("Progress error = %v", err)
			}
			if progress != nil {
				t.Errorf("Progress = %+v, want nil", progress)
			}
		})
	}
}

func TestResolver_Progress_InvalidTimes(t *testing.T) {
	r := NewResolver()
	lesson := domain.Lesson{ID: "mat", DayOfWeek: 1, StartTime: "26:00", EndTime: "09:00"}

	if _, err := r.Progress(lesson, at(t, 1, 8, 30)); !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Errorf("Progress error = %v, want ErrInvalidTimeRange", err)
	}
}
