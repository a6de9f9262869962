package pricing

import (
	"context"
	"errors"
	"testing"

	"jammshop/domain"

	"gorm.io/datatypes"
)

type fakeRuleAdminRepo struct {
	rules  map[uint64]domain.PricingRule
	nextID uint64
}

func newFakeRuleAdminRepo() *fakeRuleAdminRepo {
	return &fakeRuleAdminRepo{rules: make(map[uint64]domain.PricingRule), nextID: 1}
}

func (f *fakeRuleAdminRepo) FindAll(ctx context.Context) ([]domain.PricingRule, error) {
	out := make([]domain.PricingRule, 0, len(f.rules))
	for _, r := range f.rules {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRuleAdminRepo) FindByID(ctx context.Context, id uint64) (domain.PricingRule, error) {
	r, ok := f.rules[id]
	if !ok {
		return domain.PricingRule{}, errors.New("pricing rule not found")
	}
	return r, nil
}

func (f *fakeRuleAdminRepo) Create(ctx context.Context, rule *domain.PricingRule) error {
	rule.ID = f.nextID
	f.nextID++
	f.rules[rule.ID] = *rule
	return nil
}

func (f *fakeRuleAdminRepo) Update(ctx context.Context, rule *domain.PricingRule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return errors.New("pricing rule not found")
	}
	f.rules[rule.ID] = *rule
	return nil
}

func (f *fakeRuleAdminRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.rules[id]; !ok {
		return errors.New("pricing rule not found")
	}
	delete(f.rules, id)
	return nil
}

type recordedAction struct {
	actor, action, target, detail string
}

type fakeActivity struct {
	actions []recordedAction
}

func (f *fakeActivity) Record(actor, action, target, detail string) {
	f.actions = append(f.actions, recordedAction{actor, action, target, detail})
}

func validDemandRule() *domain.PricingRule {
	return &domain.PricingRule{
		Name:            "surge hot vinyl",
		RuleType:        domain.RuleTypeDemand,
		Conditions:      datatypes.JSONMap{"threshold": float64(100)},
		AdjustmentType:  domain.AdjustmentPercentage,
		AdjustmentValue: 10,
		Priority:        50,
		Active:          true,
	}
}

func TestCreateRule_RecordsActivity(t *testing.T) {
	repo := newFakeRuleAdminRepo()
	activity := &fakeActivity{}
	svc := NewRuleAdminService(repo, activity)

	created, err := svc.CreateRule(context.Background(), "user:1", validDemandRule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Error("created rule should have an id")
	}

	if len(activity.actions) != 1 {
		t.Fatalf("recorded actions = %d, want 1", len(activity.actions))
	}
	got := activity.actions[0]
	if got.actor != "user:1" || got.action != "pricing_rule.create" {
		t.Errorf("unexpected activity entry: %+v", got)
	}
}

func TestCreateRule_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PricingRule)
	}{
		{"missing name", func(r *domain.PricingRule) { r.Name = "" }},
		{"unknown rule type", func(r *domain.PricingRule) { r.RuleType = "seasonal" }},
		{"unknown adjustment type", func(r *domain.PricingRule) { r.AdjustmentType = "multiplier" }},
		{"bad conditions", func(r *domain.PricingRule) { r.Conditions = datatypes.JSONMap{"threshold": "lots"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRuleAdminRepo()
			activity := &fakeActivity{}
			svc := NewRuleAdminService(repo, activity)

			rule := validDemandRule()
			tt.mutate(rule)

			if _, err := svc.CreateRule(context.Background(), "user:1", rule); err == nil {
				t.Error("expected validation error")
			}
			if len(activity.actions) != 0 {
				t.Error("rejected rule should not be recorded")
			}
		})
	}
}

func TestUpdateRule_NotFound(t *testing.T) {
	svc := NewRuleAdminService(newFakeRuleAdminRepo(), &fakeActivity{})

	rule := validDemandRule()
	rule.ID = 42

	_, err := svc.UpdateRule(context.Background(), "user:1", rule)
	if err == nil || err.Error() != "pricing rule not found" {
		t.Errorf("err = %v, want pricing rule not found", err)
	}
}

func TestDeleteRule_RecordsActivity(t *testing.T) {
	repo := newFakeRuleAdminRepo()
	activity := &fakeActivity{}
	svc := NewRuleAdminService(repo, activity)

	created, err := svc.CreateRule(context.Background(), "user:1", validDemandRule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteRule(context.Background(), "user:2", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := activity.actions[len(activity.actions)-1]
	if last.action != "pricing_rule.delete" || last.actor != "user:2" {
		t.Errorf("unexpected activity entry: %+v", last)
	}
	if _, err := svc.GetRule(context.Background(), created.ID); err == nil {
		t.Error("deleted rule should not be found")
	}
}
