package domain

import (
	"fmt"
	"time"
)

// SubjectConfig carries per-subject notification overrides.
type SubjectConfig struct {
	SubjectName            string   `json:"subject_name"`
	IsEnabled              bool     `json:"is_enabled"`
	ReminderMinutes        int      `json:"reminder_minutes"`
	CustomSound            string   `json:"custom_sound,omitempty"`
	Priority               Priority `json:"priority"`
	EnableWeekendReminders bool     `json:"enable_weekend_reminders"`
}

// QuietHours is a time-of-day blackout window. StartTime and EndTime are
// "HH:mm" strings; a window that wraps midnight (start > end) covers
// [start, 24:00) plus [00:00, end].
type QuietHours struct {
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	IsEnabled             bool   `json:"is_enabled"`
	AllowCriticalOverride bool   `json:"allow_critical_override"`
}

// Contains reports whether the given minutes-since-midnight value falls
// inside the window, handling the midnight-wrap case.
func (q QuietHours) Contains(minutes int) (bool, error) {
	start, err := ClockMinutes(q.StartTime)
	if err != nil {
		return false, err
	}
	end, err := ClockMinutes(q.EndTime)
	if err != nil {
		return false, err
	}

	if start <= end {
		return minutes >= start && minutes <= end, nil
	}
	return minutes >= start || minutes <= end, nil
}

// DaySchedule is the per-day notification window configuration.
type DaySchedule struct {
	Day        int         `json:"day"`
	IsEnabled  bool        `json:"is_enabled"`
	StartTime  string      `json:"start_time"`
	EndTime    string      `json:"end_time"`
	QuietHours *QuietHours `json:"quiet_hours,omitempty"`
}

// RepeatPattern describes how a custom reminder recurs.
type RepeatPattern string

const (
	RepeatNever    RepeatPattern = "never"
	RepeatDaily    RepeatPattern = "daily"
	RepeatWeekdays RepeatPattern = "weekdays"
	RepeatWeekly   RepeatPattern = "weekly"
	RepeatCustom   RepeatPattern = "custom"
)

// CustomReminder is a user-defined reminder independent of the lesson
// catalog. Weekday (timetable numbering) is only consulted for the weekly
// pattern.
type CustomReminder struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Time               string        `json:"time"`
	Weekday            int           `json:"weekday,omitempty"`
	IsEnabled          bool          `json:"is_enabled"`
	RepeatPattern      RepeatPattern `json:"repeat_pattern"`
	AssociatedSubjects []string      `json:"associated_subjects,omitempty"`
}

// NotificationSettings is the configuration aggregate for one installation.
type NotificationSettings struct {
	EnableNotifications     bool                     `json:"enable_notifications"`
	EnableLessonReminders   bool                     `json:"enable_lesson_reminders"`
	EnableDailyNotification bool                     `json:"enable_daily_notification"`
	DailyNotificationTime   string                   `json:"daily_notification_time"`
	DefaultReminderMinutes  int                      `json:"default_reminder_minutes"`
	EnableSmartScheduling   bool                     `json:"enable_smart_scheduling"`
	SubjectConfigs          map[string]SubjectConfig `json:"subject_configs"`
	DaySchedules            map[int]DaySchedule      `json:"day_schedules"`
	GlobalQuietHours        *QuietHours              `json:"global_quiet_hours,omitempty"`
	CustomReminders         []CustomReminder         `json:"custom_reminders"`
}

// DefaultSettings returns the settings used when no settings document is
// provided: notifications on, 5 minute lead, every day enabled 08:00-18:00,
// global quiet hours 22:00-07:00 with critical override.
func DefaultSettings() NotificationSettings {
	daySchedules := make(map[int]DaySchedule, 7)
	for day := 1; day <= 7; day++ {
		daySchedules[day] = DaySchedule{
			Day:       day,
			IsEnabled: true,
			StartTime: "08:00",
			EndTime:   "18:00",
		}
	}

	return NotificationSettings{
		EnableNotifications:     true,
		EnableLessonReminders:   true,
		EnableDailyNotification: true,
		DailyNotificationTime:   "20:00",
		DefaultReminderMinutes:  5,
		SubjectConfigs:          make(map[string]SubjectConfig),
		DaySchedules:            daySchedules,
		GlobalQuietHours: &QuietHours{
			StartTime:             "22:00",
			EndTime:               "07:00",
			IsEnabled:             true,
			AllowCriticalOverride: true,
		},
		CustomReminders: nil,
	}
}

// EffectiveSubjectConfig returns the explicit config for a subject, or a
// default-constructed one (enabled, default lead time, normal priority, no
// weekend reminders). Every subject in the catalog therefore always has an
// effective config.
func (s NotificationSettings) EffectiveSubjectConfig(subject string) SubjectConfig {
	if cfg, ok := s.SubjectConfigs[subject]; ok {
		return cfg
	}
	return SubjectConfig{
		SubjectName:     subject,
		IsEnabled:       true,
		ReminderMinutes: s.DefaultReminderMinutes,
		Priority:        PriorityNormal,
	}
}

// ScheduleForDay returns the schedule for a timetable day, if configured.
func (s NotificationSettings) ScheduleForDay(day int) (DaySchedule, bool) {
	sched, ok := s.DaySchedules[day]
	return sched, ok
}

// EffectiveQuietHours resolves the quiet-hours window for a timetable day:
// the day-specific window when present and enabled, else the global window
// when enabled, else nil (no suppression).
func (s NotificationSettings) EffectiveQuietHours(day int) *QuietHours {
	if sched, ok := s.DaySchedules[day]; ok {
		if sched.QuietHours != nil && sched.QuietHours.IsEnabled {
			return sched.QuietHours
		}
	}
	if s.GlobalQuietHours != nil && s.GlobalQuietHours.IsEnabled {
		return s.GlobalQuietHours
	}
	return nil
}

// NotificationsActiveAt reports whether notifications are active at the given
// instant: the instant's day schedule must exist and be enabled, and the
// instant must not fall inside the effective quiet hours.
func (s NotificationSettings) NotificationsActiveAt(t time.Time) bool {
	day := TimetableDay(t)

	sched, ok := s.ScheduleForDay(day)
	if !ok || !sched.IsEnabled {
		return false
	}

	if qh := s.EffectiveQuietHours(day); qh != nil {
		contained, err := qh.Contains(MinutesOfDay(t))
		if err == nil && contained {
			return false
		}
	}

	return true
}

// Validate checks the structural integrity of the settings. A failure here
// indicates a corrupted configuration store and aborts an entire planning
// pass; per-lesson and per-reminder data quirks are handled by the planner's
// skip-and-continue path instead.
func (s NotificationSettings) Validate() error {
	if s.DefaultReminderMinutes < 0 {
		return fmt.Errorf("%w: default reminder minutes %d is negative",
			ErrInvalidConfiguration, s.DefaultReminderMinutes)
	}

	if _, err := ClockMinutesStrict(s.DailyNotificationTime); err != nil {
		return fmt.Errorf("%w: daily notification time: %v", ErrInvalidConfiguration, err)
	}

	for day, sched := range s.DaySchedules {
		if day < 1 || day > 7 {
			return fmt.Errorf("%w: day schedule key %d outside 1..7", ErrInvalidConfiguration, day)
		}
		if _, err := ClockMinutesStrict(sched.StartTime); err != nil {
			return fmt.Errorf("%w: day %d start time: %v", ErrInvalidConfiguration, day, err)
		}
		if _, err := ClockMinutesStrict(sched.EndTime); err != nil {
			return fmt.Errorf("%w: day %d end time: %v", ErrInvalidConfiguration, day, err)
		}
		if sched.QuietHours != nil {
			if err := validateQuietHours(*sched.QuietHours); err != nil {
				return fmt.Errorf("%w: day %d quiet hours: %v", ErrInvalidConfiguration, day, err)
			}
		}
	}

	if s.GlobalQuietHours != nil {
		if err := validateQuietHours(*s.GlobalQuietHours); err != nil {
			return fmt.Errorf("%w: global quiet hours: %v", ErrInvalidConfiguration, err)
		}
	}

	return nil
}

func validateQuietHours(q QuietHours) error {
	if _, err := ClockMinutesStrict(q.StartTime); err != nil {
		return err
	}
	if _, err := ClockMinutesStrict(q.EndTime); err != nil {
		return err
	}
	return nil
}
