package domain

import (
	"fmt"
	"sort"
)

// NotificationRule is a declarative recurring or one-off trigger consumed by
// the scheduler gateway. Weekday uses the calendar numbering (Sunday=1 ..
// Saturday=7); Weekday 0 means the trigger fires every day at the given time
// (daily-repeating custom reminders).
type NotificationRule struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Weekday    int    `json:"weekday"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Repeats    bool   `json:"repeats"`
}

// LessonRuleIdentifier builds the stable identifier for a lesson reminder.
// Stability across planning passes lets the gateway deduplicate and replace
// previously registered triggers.
func LessonRuleIdentifier(lessonID string, dayOfWeek int) string {
	return fmt.Sprintf("lesson-%s-%d", lessonID, dayOfWeek)
}

// DailyRuleIdentifier builds the identifier for a daily summary rule.
func DailyRuleIdentifier(dayOfWeek int) string {
	return fmt.Sprintf("daily-school-%d", dayOfWeek)
}

// CustomRuleIdentifier builds the identifier for a custom reminder rule. The
// weekday suffix is only used for the weekdays pattern, which emits one rule
// per calendar weekday.
func CustomRuleIdentifier(reminderID string) string {
	return fmt.Sprintf("custom-reminder-%s", reminderID)
}

func CustomWeekdayRuleIdentifier(reminderID string, weekday int) string {
	return fmt.Sprintf("custom-reminder-%s-%d", reminderID, weekday)
}

// SortRules orders rules by (weekday, hour, minute, identifier). The order
// carries no scheduling meaning but makes planning passes deterministic.
func SortRules(rules []NotificationRule) {
	sort.Slice(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.Weekday != b.Weekday {
			return a.Weekday < b.Weekday
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		if a.Minute != b.Minute {
			return a.Minute < b.Minute
		}
		return a.Identifier < b.Identifier
	})
}
