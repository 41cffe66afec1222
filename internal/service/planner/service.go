package planner

import (
	"context"
	"log/slog"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
	"github.com/aulanext/timetable-notification-planning/internal/observability/metrics"
	"github.com/aulanext/timetable-notification-planning/internal/service/quiet"
)

const (
	skipSubjectDisabled = "subject disabled"
	skipMalformedTime   = "malformed start time"
	skipLeadCrossesDay  = "lead time crosses midnight"
	skipWeekend         = "weekend reminders disabled"
	skipQuietHours      = "quiet hours"
	skipInvalidTime     = "invalid reminder time"
	skipInvalidWeekday  = "invalid reminder weekday"
)

// Service derives the full set of notification rules for one planning pass.
// It holds no mutable state: Plan is a deterministic function of the catalog
// and settings snapshots it is handed.
type Service struct {
	quietFilter    *quiet.Filter
	plannerMetrics *metrics.PlannerMetrics

	// legacyWeekendCheck selects which weekend interpretation the per-subject
	// weekend gate uses. The timetable convention is Monday=1..Sunday=7, but
	// the historical check tested dayOfWeek == 6 || dayOfWeek == 0, which
	// never matches Sunday. The corrected check tests 6 || 7. Both are kept
	// selectable so either behavior can be pinned by configuration.
	legacyWeekendCheck bool
}

func NewService(
	quietFilter *quiet.Filter,
	plannerMetrics *metrics.PlannerMetrics,
	legacyWeekendCheck bool,
) *Service {
	return &Service{
		quietFilter:        quietFilter,
		plannerMetrics:     plannerMetrics,
		legacyWeekendCheck: legacyWeekendCheck,
	}
}

// Plan produces the complete ordered rule list for the catalog and settings.
// A structurally invalid settings document aborts the pass with an error;
// individual malformed lessons or reminders are recorded as skipped items and
// the pass continues.
func (s *Service) Plan(
	ctx context.Context,
	catalog domain.Catalog,
	settings domain.NotificationSettings,
) (*Response, error) {
	if err := settings.Validate(); err != nil {
		slog.ErrorContext(ctx, "settings validation failed",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	resp := &Response{
		Rules:   make([]domain.NotificationRule, 0, len(catalog)),
		Skipped: make([]SkippedItem, 0),
	}

	if !settings.EnableNotifications {
		slog.InfoContext(ctx, "notifications disabled, planning empty rule set")
		return resp, nil
	}

	if settings.EnableLessonReminders {
		for _, lesson := range catalog {
			s.planLessonReminder(ctx, lesson, settings, resp)
		}
	}

	if settings.EnableDailyNotification {
		s.planDailySummaries(ctx, catalog, settings, resp)
	}

	for _, reminder := range settings.CustomReminders {
		if !reminder.IsEnabled {
			continue
		}
		s.planCustomReminder(ctx, reminder, resp)
	}

	domain.SortRules(resp.Rules)
	resp.PlannedCount = len(resp.Rules)
	resp.SkippedCount = len(resp.Skipped)

	slog.InfoContext(ctx, "planning pass completed",
		slog.Int("planned_count", resp.PlannedCount),
		slog.Int("skipped_count", resp.SkippedCount),
	)

	return resp, nil
}

func (s *Service) planLessonReminder(
	ctx context.Context,
	lesson domain.Lesson,
	settings domain.NotificationSettings,
	resp *Response,
) {
	cfg := settings.EffectiveSubjectConfig(lesson.Subject)
	if !cfg.IsEnabled {
		s.skip(ctx, resp, KindLesson, lesson.ID, lesson.Subject, skipSubjectDisabled)
		return
	}

	hour, minute, err := domain.SplitClock(lesson.StartTime)
	if err != nil {
		slog.WarnContext(ctx, "skipping lesson with malformed start time",
			slog.String("lesson_id", lesson.ID),
			slog.String("start_time", lesson.StartTime),
		)
		s.skip(ctx, resp, KindLesson, lesson.ID, lesson.Subject, skipMalformedTime)
		return
	}

	// Lead-time borrow against the start time. A borrow that pushes the hour
	// negative means the trigger would land on the previous day; cross-midnight
	// lead times are not supported and the rule is discarded.
	minute -= cfg.ReminderMinutes
	if minute < 0 {
		minute += 60
		hour--
	}
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 {
		slog.WarnContext(ctx, "skipping lesson whose lead time crosses midnight",
			slog.String("lesson_id", lesson.ID),
			slog.String("start_time", lesson.StartTime),
			slog.Int("reminder_minutes", cfg.ReminderMinutes),
		)
		s.skip(ctx, resp, KindLesson, lesson.ID, lesson.Subject, skipLeadCrossesDay)
		return
	}

	if s.isWeekend(lesson.DayOfWeek) && !cfg.EnableWeekendReminders {
		s.skip(ctx, resp, KindLesson, lesson.ID, lesson.Subject, skipWeekend)
		return
	}

	if s.quietFilter.Suppressed(settings, lesson.DayOfWeek, hour, minute, cfg.Priority) {
		s.skip(ctx, resp, KindLesson, lesson.ID, lesson.Subject, skipQuietHours)
		return
	}

	rule := domain.NotificationRule{
		Identifier: domain.LessonRuleIdentifier(lesson.ID, lesson.DayOfWeek),
		Title:      lesson.Subject,
		Body:       lessonBody(cfg, lesson),
		Weekday:    domain.CalendarWeekday(lesson.DayOfWeek),
		Hour:       hour,
		Minute:     minute,
		Repeats:    true,
	}

	resp.Rules = append(resp.Rules, rule)
	if s.plannerMetrics != nil {
		s.plannerMetrics.RecordRulePlanned(ctx, KindLesson)
	}
}

func (s *Service) planDailySummaries(
	ctx context.Context,
	catalog domain.Catalog,
	settings domain.NotificationSettings,
	resp *Response,
) {
	// Validated upstream, cannot fail here.
	hour, minute, err := domain.SplitClock(settings.DailyNotificationTime)
	if err != nil {
		return
	}

	for day := 1; day <= 7; day++ {
		sched, ok := settings.ScheduleForDay(day)
		if !ok || !sched.IsEnabled {
			continue
		}

		subjects := enabledSubjectsForDay(catalog, settings, day)
		if len(subjects) == 0 {
			continue
		}

		if s.quietFilter.Suppressed(settings, day, hour, minute, domain.PriorityNormal) {
			s.skip(ctx, resp, KindDaily, domain.DailyRuleIdentifier(day), "", skipQuietHours)
			continue
		}

		rule := domain.NotificationRule{
			Identifier: domain.DailyRuleIdentifier(day),
			Title:      "📚 Buona scuola!",
			Body:       dailyBody(subjects, settings.EnableSmartScheduling),
			Weekday:    domain.CalendarWeekday(day),
			Hour:       hour,
			Minute:     minute,
			Repeats:    true,
		}

		resp.Rules = append(resp.Rules, rule)
		if s.plannerMetrics != nil {
			s.plannerMetrics.RecordRulePlanned(ctx, KindDaily)
		}
	}
}

func (s *Service) planCustomReminder(
	ctx context.Context,
	reminder domain.CustomReminder,
	resp *Response,
) {
	hour, minute, err := domain.SplitClock(reminder.Time)
	if err != nil || hour < 0 || hour >= 24 || minute < 0 || minute >= 60 {
		slog.WarnContext(ctx, "skipping custom reminder with invalid time",
			slog.String("reminder_id", reminder.ID),
			slog.String("time", reminder.Time),
		)
		s.skip(ctx, resp, KindCustom, reminder.ID, "", skipInvalidTime)
		return
	}

	emit := func(rule domain.NotificationRule) {
		resp.Rules = append(resp.Rules, rule)
		if s.plannerMetrics != nil {
			s.plannerMetrics.RecordRulePlanned(ctx, KindCustom)
		}
	}

	switch reminder.RepeatPattern {
	case domain.RepeatDaily:
		emit(domain.NotificationRule{
			Identifier: domain.CustomRuleIdentifier(reminder.ID),
			Title:      customReminderTitle,
			Body:       reminder.Title,
			Weekday:    0,
			Hour:       hour,
			Minute:     minute,
			Repeats:    true,
		})

	case domain.RepeatWeekdays:
		// One rule per school weekday, Monday..Friday in calendar numbering.
		for weekday := 2; weekday <= 6; weekday++ {
			emit(domain.NotificationRule{
				Identifier: domain.CustomWeekdayRuleIdentifier(reminder.ID, weekday),
				Title:      customReminderTitle,
				Body:       reminder.Title,
				Weekday:    weekday,
				Hour:       hour,
				Minute:     minute,
				Repeats:    true,
			})
		}

	case domain.RepeatWeekly:
		if reminder.Weekday < 1 || reminder.Weekday > 7 {
			s.skip(ctx, resp, KindCustom, reminder.ID, "", skipInvalidWeekday)
			return
		}
		emit(domain.NotificationRule{
			Identifier: domain.CustomRuleIdentifier(reminder.ID),
			Title:      customReminderTitle,
			Body:       reminder.Title,
			Weekday:    domain.CalendarWeekday(reminder.Weekday),
			Hour:       hour,
			Minute:     minute,
			Repeats:    true,
		})

	default: // never, custom
		emit(domain.NotificationRule{
			Identifier: domain.CustomRuleIdentifier(reminder.ID),
			Title:      customReminderTitle,
			Body:       reminder.Title,
			Weekday:    0,
			Hour:       hour,
			Minute:     minute,
			Repeats:    false,
		})
	}
}

func (s *Service) isWeekend(dayOfWeek int) bool {
	if s.legacyWeekendCheck {
		return dayOfWeek == 6 || dayOfWeek == 0
	}
	return dayOfWeek == 6 || dayOfWeek == 7
}

func (s *Service) skip(ctx context.Context, resp *Response, kind, ref, subject, reason string) {
	resp.Skipped = append(resp.Skipped, SkippedItem{
		Kind:    kind,
		Ref:     ref,
		Subject: subject,
		Reason:  reason,
	})
	if s.plannerMetrics != nil {
		s.plannerMetrics.RecordRuleSkipped(ctx, kind, reason)
	}
}

// enabledSubjectsForDay returns the distinct, sorted subjects taught on the
// given day, excluding breaks and subjects whose effective config is
// disabled.
func enabledSubjectsForDay(
	catalog domain.Catalog,
	settings domain.NotificationSettings,
	day int,
) []string {
	seen := make(map[string]struct{})
	for _, lesson := range catalog.LessonsForDay(day) {
		if lesson.IsBreak() {
			continue
		}
		if !settings.EffectiveSubjectConfig(lesson.Subject).IsEnabled {
			continue
		}
		seen[lesson.Subject] = struct{}{}
	}

	subjects := make([]string, 0, len(seen))
	for subject := range seen {
		subjects = append(subjects, subject)
	}
	sortStrings(subjects)
	return subjects
}
