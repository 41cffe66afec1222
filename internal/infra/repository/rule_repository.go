package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

const (
	ruleKeyPrefix = "scheduler:rule:"
	ruleIndexKey  = "scheduler:rules"
)

type ruleRecord struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Weekday    int    `json:"weekday"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Repeats    bool   `json:"repeats"`
}

type ruleRepository struct {
	client *redis.Client
}

func NewRuleRepository(client *redis.Client) domain.RuleRepository {
	return &ruleRepository{
		client: client,
	}
}

func (r *ruleRepository) SaveRule(ctx context.Context, rule *domain.NotificationRule) error {
	if rule == nil || rule.Identifier == "" {
		return ErrInvalidRuleData
	}

	record := ruleRecord{
		Identifier: rule.Identifier,
		Title:      rule.Title,
		Body:       rule.Body,
		Weekday:    rule.Weekday,
		Hour:       rule.Hour,
		Minute:     rule.Minute,
		Repeats:    rule.Repeats,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidRuleData
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, ruleKeyPrefix+rule.Identifier, data, 0)
	pipe.SAdd(ctx, ruleIndexKey, rule.Identifier)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *ruleRepository) GetRule(ctx context.Context, identifier string) (*domain.NotificationRule, error) {
	data, err := r.client.Get(ctx, ruleKeyPrefix+identifier).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}

	var record ruleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidRuleData
	}

	return &domain.NotificationRule{
		Identifier: record.Identifier,
		Title:      record.Title,
		Body:       record.Body,
		Weekday:    record.Weekday,
		Hour:       record.Hour,
		Minute:     record.Minute,
		Repeats:    record.Repeats,
	}, nil
}

func (r *ruleRepository) DeleteRule(ctx context.Context, identifier string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, ruleKeyPrefix+identifier)
	pipe.SRem(ctx, ruleIndexKey, identifier)

	_, err := pipe.Exec(ctx)
	return err
}

func (r *ruleRepository) ListIdentifiers(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, ruleIndexKey).Result()
}
