package planner

import (
	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// Kinds of candidate rules, used for skip bookkeeping and metrics.
const (
	KindLesson = "lesson"
	KindDaily  = "daily"
	KindCustom = "custom"
)

// SkippedItem records one candidate that did not produce a rule, with the
// reason it was dropped.
type SkippedItem struct {
	Kind    string `json:"kind"`
	Ref     string `json:"ref"`
	Subject string `json:"subject,omitempty"`
	Reason  string `json:"reason"`
}

// Response is the outcome of one planning pass: the ordered rule list plus
// the per-item skips. Order is deterministic (weekday, hour, minute,
// identifier) so identical inputs yield identical output.
type Response struct {
	PlannedCount int                       `json:"planned_count"`
	SkippedCount int                       `json:"skipped_count"`
	Rules        []domain.NotificationRule `json:"rules"`
	Skipped      []SkippedItem             `json:"skipped"`
}
