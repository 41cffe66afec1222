package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

const customReminderTitle = "🔔 Promemoria"

// lessonBody renders the reminder text for a single lesson, varying the
// prefix with the subject's priority tier. Breaks keep their own wording.
func lessonBody(cfg domain.SubjectConfig, lesson domain.Lesson) string {
	var body string

	if lesson.IsBreak() {
		body = fmt.Sprintf("Intervallo tra %d minuti - %s", cfg.ReminderMinutes, lesson.Classroom)
	} else {
		switch cfg.Priority {
		case domain.PriorityCritical:
			body = fmt.Sprintf("🚨 IMPORTANTE: %s tra %d minuti - Aula: %s",
				lesson.Subject, cfg.ReminderMinutes, lesson.Classroom)
		case domain.PriorityHigh:
			body = fmt.Sprintf("⚡ %s tra %d minuti - Aula: %s",
				lesson.Subject, cfg.ReminderMinutes, lesson.Classroom)
		case domain.PriorityLow:
			body = fmt.Sprintf("%s tra %d minuti - Aula: %s",
				lesson.Subject, cfg.ReminderMinutes, lesson.Classroom)
		default:
			body = fmt.Sprintf("📚 %s tra %d minuti - Aula: %s",
				lesson.Subject, cfg.ReminderMinutes, lesson.Classroom)
		}
	}

	if lesson.Teacher != "" {
		body += " - Prof. " + lesson.Teacher
	}

	return body
}

// dailyBody renders the daily summary text. The subjects slice is distinct
// and sorted. Smart scheduling swaps the standard greeting for a
// workload-aware one; more than five subjects gets the intense-day message.
func dailyBody(subjects []string, smart bool) string {
	count := len(subjects)

	if smart {
		switch {
		case count == 1:
			return fmt.Sprintf("Oggi hai: %s. Concentrati e dai il massimo! 🎯", subjects[0])
		case count <= 3:
			return fmt.Sprintf("Oggi hai %d materie: %s. Organizza bene la giornata! 📝",
				count, strings.Join(subjects, ", "))
		case count > 5:
			return fmt.Sprintf("Oggi hai %d materie. Giornata intensa ma ce la puoi fare! 💪", count)
		default:
			return fmt.Sprintf("Oggi hai %d materie. Buona giornata di studio! 📚", count)
		}
	}

	switch {
	case count == 1:
		return fmt.Sprintf("Oggi hai: %s. Buona giornata! 🎓", subjects[0])
	case count <= 3:
		return fmt.Sprintf("Oggi hai: %s. Buona giornata! 🎓", strings.Join(subjects, ", "))
	default:
		return fmt.Sprintf("Oggi hai %d materie: %s e altre. Buona giornata! 🎓",
			count, strings.Join(subjects[:3], ", "))
	}
}

func sortStrings(values []string) {
	sort.Strings(values)
}
