package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	plannerMeterName = "notification.planner"
)

type PlannerMetrics struct {
	rulesPlanned     metric.Int64Counter
	rulesSkipped     metric.Int64Counter
	planningDuration metric.Float64Histogram
	syncActions      metric.Int64Counter
}

func NewPlannerMetrics() (*PlannerMetrics, error) {
	meter := otel.Meter(plannerMeterName)

	rulesPlanned, err := meter.Int64Counter(
		"planner_rules_total",
		metric.WithDescription("Total number of notification rules planned"),
		metric.WithUnit("{rule}"),
	)
	if err != nil {
		return nil, err
	}

	rulesSkipped, err := meter.Int64Counter(
		"planner_rules_skipped_total",
		metric.WithDescription("Total number of candidate rules skipped during planning"),
		metric.WithUnit("{rule}"),
	)
	if err != nil {
		return nil, err
	}

	planningDuration, err := meter.Float64Histogram(
		"planner_pass_duration_seconds",
		metric.WithDescription("Planning pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	syncActions, err := meter.Int64Counter(
		"scheduler_sync_actions_total",
		metric.WithDescription("Rule registry actions performed by the sync service"),
		metric.WithUnit("{rule}"),
	)
	if err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		rulesPlanned:     rulesPlanned,
		rulesSkipped:     rulesSkipped,
		planningDuration: planningDuration,
		syncActions:      syncActions,
	}, nil
}

func (m *PlannerMetrics) RecordRulePlanned(ctx context.Context, kind string) {
	m.rulesPlanned.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *PlannerMetrics) RecordRuleSkipped(ctx context.Context, kind, reason string) {
	m.rulesSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("reason", reason),
	))
}

func (m *PlannerMetrics) RecordPlanningDuration(ctx context.Context, duration time.Duration) {
	m.planningDuration.Record(ctx, duration.Seconds())
}

func (m *PlannerMetrics) RecordSyncAction(ctx context.Context, action string) {
	m.syncActions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
	))
}
