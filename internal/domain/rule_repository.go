package domain

import "context"

// RuleRepository is the registry of rules currently registered with the
// scheduler gateway. The sync service diffs freshly planned rules against it.
type RuleRepository interface {
	SaveRule(ctx context.Context, rule *NotificationRule) error
	GetRule(ctx context.Context, identifier string) (*NotificationRule, error)
	DeleteRule(ctx context.Context, identifier string) error
	ListIdentifiers(ctx context.Context) ([]string, error)
}
