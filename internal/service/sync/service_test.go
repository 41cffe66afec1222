package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// fakeRuleRepository is an in-memory RuleRepository for testing.
type fakeRuleRepository struct {
	rules     map[string]domain.NotificationRule
	saveErr   map[string]error
	deleteErr map[string]error
	listErr   error
}

func newFakeRuleRepository() *fakeRuleRepository {
	return &fakeRuleRepository{
		rules:     make(map[string]domain.NotificationRule),
		saveErr:   make(map[string]error),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeRuleRepository) SaveRule(_ context.Context, rule *domain.NotificationRule) error {
	if err := f.saveErr[rule.Identifier]; err != nil {
		return err
	}
	f.rules[rule.Identifier] = *rule
	return nil
}

func (f *fakeRuleRepository) GetRule(_ context.Context, identifier string) (*domain.NotificationRule, error) {
	rule, ok := f.rules[identifier]
	if !ok {
		return nil, domain.ErrRuleNotFound
	}
	return &rule, nil
}

func (f *fakeRuleRepository) DeleteRule(_ context.Context, identifier string) error {
	if err := f.deleteErr[identifier]; err != nil {
		return err
	}
	delete(f.rules, identifier)
	return nil
}

func (f *fakeRuleRepository) ListIdentifiers(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.rules))
	for id := range f.rules {
		ids = append(ids, id)
	}
	return ids, nil
}

func rule(id string, hour int) domain.NotificationRule {
	return domain.NotificationRule{
		Identifier: id,
		Title:      "Matematica",
		Body:       "body",
		Weekday:    2,
		Hour:       hour,
		Minute:     0,
		Repeats:    true,
	}
}

func TestSync_RegistersNewRules(t *testing.T) {
	repo := newFakeRuleRepository()
	svc := NewService(repo, nil)

	resp, err := svc.Sync(context.Background(), []domain.NotificationRule{rule("a", 8), rule("b", 9)})
	if err != nil {
		t.Fatalf("Sync error = %v", err)
	}

	if resp.RegisteredCount != 2 {
		t.Errorf("RegisteredCount = %d, want 2", resp.RegisteredCount)
	}
	if len(repo.rules) != 2 {
		t.Errorf("registry holds %d rules, want 2", len(repo.rules))
	}
}

func TestSync_LeavesUnchangedRulesAlone(t *testing.T) {
	repo := newFakeRuleRepository()
	existing := rule("a", 8)
	repo.rules["a"] = existing

	svc := NewService(repo, nil)

	resp, err := svc.Sync(context.Background(), []domain.NotificationRule{existing})
	if err != nil {
		t.Fatalf("Sync error = %v", err)
	}

	if resp.UnchangedCount != 1 {
		t.Errorf("UnchangedCount = %d, want 1", resp.UnchangedCount)
	}
	if resp.RegisteredCount != 0 || resp.ReplacedCount != 0 || resp.RemovedCount != 0 {
		t.Errorf("unexpected counts: %+v", resp)
	}
}

func TestSync_ReplacesChangedRules(t *testing.T) {
	repo := newFakeRuleRepository()
	repo.rules["a"] = rule("a", 8)

	svc := NewService(repo, nil)

	changed := rule("a", 10)
	resp, err := svc.Sync(context.Background(), []domain.NotificationRule{changed})
	if err != nil {
		t.Fatalf("Sync error = %v", err)
	}

	if resp.ReplacedCount != 1 {
		t.Errorf("ReplacedCount = %d, want 1", resp.ReplacedCount)
	}
	if got := repo.rules["a"]; got.Hour != 10 {
		t.Errorf("registry rule hour = %d, want 10", got.Hour)
	}
}

func TestSync_RemovesStaleRules(t *testing.T) {
	repo := newFakeRuleRepository()
	repo.rules["stale"] = rule("stale", 8)
	repo.rules["kept"] = rule("kept", 9)

	svc := NewService(repo, nil)

	resp, err := svc.Sync(context.Background(), []domain.NotificationRule{rule("kept", 9)})
	if err != nil {
		t.Fatalf("Sync error = %v", err)
	}

	if resp.RemovedCount != 1 {
		t.Errorf("RemovedCount = %d, want 1", resp.RemovedCount)
	}
	if _, ok := repo.rules["stale"]; ok {
		t.Error("stale rule should have been removed")
	}
	if _, ok := repo.rules["kept"]; !ok {
		t.Error("kept rule should remain")
	}
}

func TestSync_ContinuesPastPerRuleFailures(t *testing.T) {
	repo := newFakeRuleRepository()
	repo.saveErr["broken"] = errors.New("write refused")

	svc := NewService(repo, nil)

	resp, err := svc.Sync(context.Background(), []domain.NotificationRule{
		rule("broken", 8),
		rule("ok", 9),
	})
	if err != nil {
		t.Fatalf("Sync error = %v", err)
	}

	if resp.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", resp.FailedCount)
	}
	if resp.RegisteredCount != 1 {
		t.Errorf("RegisteredCount = %d, want 1", resp.RegisteredCount)
	}
	if _, ok := repo.rules["ok"]; !ok {
		t.Error("the pass should continue after a failure")
	}

	var failed *Result
	for i := range resp.Results {
		if resp.Results[i].Action == ActionFailed {
			failed = &resp.Results[i]
		}
	}
	if failed == nil || failed.Identifier != "broken" || failed.Error == "" {
		t.Errorf("failure result = %+v", failed)
	}
}

func TestSync_ListFailureAbortsPass(t *testing.T) {
	repo := newFakeRuleRepository()
	repo.listErr = errors.New("registry unavailable")

	svc := NewService(repo, nil)

	if _, err := svc.Sync(context.Background(), []domain.NotificationRule{rule("a", 8)}); err == nil {
		t.Error("Sync should fail when the registry cannot be listed")
	}
}
