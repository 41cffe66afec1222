package quiet

import (
	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// Filter decides whether a candidate trigger time is suppressed by quiet
// hours. Suppression is binary: a suppressed rule is dropped, never moved to
// the window boundary.
type Filter struct{}

func NewFilter() *Filter {
	return &Filter{}
}

// Suppressed reports whether a trigger at (dayOfWeek, hour, minute) falls
// inside the effective quiet-hours window for that timetable day. Critical
// priority escapes suppression when the window allows the override.
func (f *Filter) Suppressed(
	settings domain.NotificationSettings,
	dayOfWeek, hour, minute int,
	priority domain.Priority,
) bool {
	window := settings.EffectiveQuietHours(dayOfWeek)
	if window == nil {
		return false
	}

	contained, err := window.Contains(hour*60 + minute)
	if err != nil || !contained {
		return false
	}

	if priority.IsCritical() && window.AllowCriticalOverride {
		return false
	}

	return true
}
