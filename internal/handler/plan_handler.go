package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
	"github.com/aulanext/timetable-notification-planning/internal/infra/catalog"
	"github.com/aulanext/timetable-notification-planning/internal/observability/metrics"
	"github.com/aulanext/timetable-notification-planning/internal/service/planner"
	"github.com/aulanext/timetable-notification-planning/internal/service/sync"
)

type PlanHandler struct {
	plannerService *planner.Service
	syncService    *sync.Service
	store          *catalog.Store
	plannerMetrics *metrics.PlannerMetrics
}

func NewPlanHandler(
	plannerService *planner.Service,
	syncService *sync.Service,
	store *catalog.Store,
	plannerMetrics *metrics.PlannerMetrics,
) *PlanHandler {
	return &PlanHandler{
		plannerService: plannerService,
		syncService:    syncService,
		store:          store,
		plannerMetrics: plannerMetrics,
	}
}

type planResponse struct {
	RunID        string                    `json:"run_id"`
	PlannedCount int                       `json:"planned_count"`
	SkippedCount int                       `json:"skipped_count"`
	Rules        []domain.NotificationRule `json:"rules"`
	Skipped      []planner.SkippedItem     `json:"skipped"`
	Sync         *sync.Response            `json:"sync,omitempty"`
}

// HandlePlan runs a full planning pass over the current catalog snapshot and
// reconciles the result with the rule registry.
func (h *PlanHandler) HandlePlan(c *gin.Context) {
	ctx := c.Request.Context()

	runID := c.GetHeader("X-Run-ID")
	if runID == "" {
		runID = uuid.New().String()
	}

	lessons, settings := h.store.Snapshot()
	if settings == nil {
		respondError(c, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	slog.InfoContext(ctx, "starting planning pass",
		slog.String("run_id", runID),
		slog.Int("lesson_count", len(lessons)),
	)

	start := time.Now()
	result, err := h.plannerService.Plan(ctx, lessons, *settings)
	if h.plannerMetrics != nil {
		h.plannerMetrics.RecordPlanningDuration(ctx, time.Since(start))
	}

	if err != nil {
		slog.ErrorContext(ctx, "planning pass failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := planResponse{
		RunID:        runID,
		PlannedCount: result.PlannedCount,
		SkippedCount: result.SkippedCount,
		Rules:        result.Rules,
		Skipped:      result.Skipped,
	}

	if h.syncService != nil {
		syncResult, err := h.syncService.Sync(ctx, result.Rules)
		if err != nil {
			slog.ErrorContext(ctx, "rule registry sync failed",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Sync = syncResult
	}

	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   "processing_error",
		"message": message,
	})
}
