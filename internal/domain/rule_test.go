package domain

import (
	"reflect"
	"testing"
)

func TestRuleIdentifiers(t *testing.T) {
	if got := LessonRuleIdentifier("abc", 1); got != "lesson-abc-1" {
		t.Errorf("LessonRuleIdentifier = %q, want %q", got, "lesson-abc-1")
	}
	if got := DailyRuleIdentifier(3); got != "daily-school-3" {
		t.Errorf("DailyRuleIdentifier = %q, want %q", got, "daily-school-3")
	}
	if got := CustomRuleIdentifier("r1"); got != "custom-reminder-r1" {
		t.Errorf("CustomRuleIdentifier = %q, want %q", got, "custom-reminder-r1")
	}
	if got := CustomWeekdayRuleIdentifier("r1", 4); got != "custom-reminder-r1-4" {
		t.Errorf("CustomWeekdayRuleIdentifier = %q, want %q", got, "custom-reminder-r1-4")
	}
}

func TestSortRules(t *testing.T) {
	rules := []NotificationRule{
		{Identifier: "d", Weekday: 3, Hour: 8, Minute: 0},
		{Identifier: "a", Weekday: 2, Hour: 9, Minute: 30},
		{Identifier: "c", Weekday: 2, Hour: 9, Minute: 0},
		{Identifier: "b", Weekday: 2, Hour: 9, Minute: 30},
	}

	SortRules(rules)

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.Identifier)
	}

	want := []string{"c", "a", "b", "d"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SortRules order = %v, want %v", ids, want)
	}
}
