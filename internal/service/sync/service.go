package sync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
	"github.com/aulanext/timetable-notification-planning/internal/observability/metrics"
)

const (
	ActionRegistered = "registered"
	ActionReplaced   = "replaced"
	ActionUnchanged  = "unchanged"
	ActionRemoved    = "removed"
	ActionFailed     = "failed"
)

type Result struct {
	Identifier string `json:"identifier"`
	Action     string `json:"action"`
	Error      string `json:"error,omitempty"`
}

type Response struct {
	RegisteredCount int      `json:"registered_count"`
	ReplacedCount   int      `json:"replaced_count"`
	UnchangedCount  int      `json:"unchanged_count"`
	RemovedCount    int      `json:"removed_count"`
	FailedCount     int      `json:"failed_count"`
	Results         []Result `json:"results"`
}

// Service reconciles a planner pass against the rule registry. A failure on
// one rule is recorded and the pass continues with the rest.
type Service struct {
	repository     domain.RuleRepository
	plannerMetrics *metrics.PlannerMetrics
}

func NewService(repository domain.RuleRepository, plannerMetrics *metrics.PlannerMetrics) *Service {
	return &Service{
		repository:     repository,
		plannerMetrics: plannerMetrics,
	}
}

// Sync registers new rules, replaces changed ones, leaves unchanged ones
// alone, and removes registry entries no longer produced by the planner.
func (s *Service) Sync(ctx context.Context, rules []domain.NotificationRule) (*Response, error) {
	existing, err := s.repository.ListIdentifiers(ctx)
	if err != nil {
		return nil, err
	}

	stale := make(map[string]bool, len(existing))
	for _, id := range existing {
		stale[id] = true
	}

	response := &Response{
		Results: make([]Result, 0, len(rules)),
	}

	for i := range rules {
		rule := &rules[i]
		delete(stale, rule.Identifier)

		action, err := s.applyRule(ctx, rule)
		if err != nil {
			slog.WarnContext(ctx, "rule sync failed",
				slog.String("identifier", rule.Identifier),
				slog.String("error", err.Error()))
			s.record(ctx, response, Result{
				Identifier: rule.Identifier,
				Action:     ActionFailed,
				Error:      err.Error(),
			})
			continue
		}

		s.record(ctx, response, Result{Identifier: rule.Identifier, Action: action})
	}

	for id := range stale {
		if err := s.repository.DeleteRule(ctx, id); err != nil {
			slog.WarnContext(ctx, "stale rule removal failed",
				slog.String("identifier", id),
				slog.String("error", err.Error()))
			s.record(ctx, response, Result{
				Identifier: id,
				Action:     ActionFailed,
				Error:      err.Error(),
			})
			continue
		}
		s.record(ctx, response, Result{Identifier: id, Action: ActionRemoved})
	}

	return response, nil
}

func (s *Service) applyRule(ctx context.Context, rule *domain.NotificationRule) (string, error) {
	current, err := s.repository.GetRule(ctx, rule.Identifier)
	if err != nil && !errors.Is(err, domain.ErrRuleNotFound) {
		return "", err
	}

	if current != nil && *current == *rule {
		return ActionUnchanged, nil
	}

	if err := s.repository.SaveRule(ctx, rule); err != nil {
		return "", err
	}

	if current == nil {
		return ActionRegistered, nil
	}
	return ActionReplaced, nil
}

func (s *Service) record(ctx context.Context, response *Response, result Result) {
	switch result.Action {
	case ActionRegistered:
		response.RegisteredCount++
	case ActionReplaced:
		response.ReplacedCount++
	case ActionUnchanged:
		response.UnchangedCount++
	case ActionRemoved:
		response.RemovedCount++
	case ActionFailed:
		response.FailedCount++
	}

	response.Results = append(response.Results, result)

	if s.plannerMetrics != nil {
		s.plannerMetrics.RecordSyncAction(ctx, result.Action)
	}
}
