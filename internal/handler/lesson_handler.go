package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
	"github.com/aulanext/timetable-notification-planning/internal/infra/catalog"
	"github.com/aulanext/timetable-notification-planning/internal/service/resolver"
)

type LessonHandler struct {
	resolver *resolver.Resolver
	store    *catalog.Store
}

func NewLessonHandler(res *resolver.Resolver, store *catalog.Store) *LessonHandler {
	return &LessonHandler{
		resolver: res,
		store:    store,
	}
}

// resolveTime reads the optional `at` query parameter as a virtual clock,
// falling back to the real one. The bool reports whether parsing succeeded.
func resolveTime(c *gin.Context) (time.Time, bool) {
	atStr := c.Query("at")
	if atStr == "" {
		return time.Now(), true
	}

	parsed, err := time.Parse(time.RFC3339, atStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid at time format, expected RFC3339")
		return time.Time{}, false
	}

	slog.InfoContext(c.Request.Context(), "using virtual time",
		slog.Time("virtual_now", parsed),
	)
	return parsed, true
}

func (h *LessonHandler) HandleCurrentLesson(c *gin.Context) {
	at, ok := resolveTime(c)
	if !ok {
		return
	}

	lessons, _ := h.store.Snapshot()

	if c.Query("strict") == "true" {
		lesson, err := h.resolver.CurrentLessonStrict(lessons, at)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondLesson(c, lesson, at)
		return
	}

	respondLesson(c, h.resolver.CurrentLesson(lessons, at), at)
}

func (h *LessonHandler) HandleNextLesson(c *gin.Context) {
	at, ok := resolveTime(c)
	if !ok {
		return
	}

	lessons, _ := h.store.Snapshot()

	var lesson *domain.Lesson
	if c.Query("rollover") == "true" {
		lesson = h.resolver.NextLessonRollover(lessons, at)
	} else {
		lesson = h.resolver.NextLesson(lessons, at)
	}

	respondLesson(c, lesson, at)
}

func (h *LessonHandler) HandleTodayLessons(c *gin.Context) {
	at, ok := resolveTime(c)
	if !ok {
		return
	}

	lessons, _ := h.store.Snapshot()
	day := domain.TimetableDay(at)

	c.JSON(http.StatusOK, gin.H{
		"day":     day,
		"lessons": lessons.LessonsForDay(day),
	})
}

func (h *LessonHandler) HandleNotificationsActive(c *gin.Context) {
	at, ok := resolveTime(c)
	if !ok {
		return
	}

	_, settings := h.store.Snapshot()
	if settings == nil {
		respondError(c, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active": settings.NotificationsActiveAt(at),
		"at":     at.Format(time.RFC3339),
	})
}

func (h *LessonHandler) HandleReload(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.Reload(); err != nil {
		slog.ErrorContext(ctx, "catalog reload failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	lessons, _ := h.store.Snapshot()
	slog.InfoContext(ctx, "catalog reloaded",
		slog.Int("lesson_count", len(lessons)),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":       "reloaded",
		"lesson_count": len(lessons),
	})
}

func respondLesson(c *gin.Context, lesson *domain.Lesson, at time.Time) {
	if lesson == nil {
		c.JSON(http.StatusOK, gin.H{
			"lesson": nil,
			"at":     at.Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson": lesson,
		"at":     at.Format(time.RFC3339),
	})
}
