package rule

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/test/mock"
)

var (
	groceriesID = uuid.MustParse("9a1b2c3d-0000-4000-8000-000000000001")
	diningID    = uuid.MustParse("9a1b2c3d-0000-4000-8000-000000000002")
)

func sampleRules() []*entity.Rule {
	return []*entity.Rule{
		{
			ID:           uuid.MustParse("00000000-0000-4000-8000-00000000000a"),
			Pattern:      "market",
			MatchType:    entity.MatchTypeContains,
			CategoryID:   groceriesID,
			CategoryName: "Groceries",
			Priority:     10,
			Enabled:      true,
		},
		{
			ID:           uuid.MustParse("00000000-0000-4000-8000-00000000000b"),
			Pattern:      "^trattoria",
			MatchType:    entity.MatchTypeRegex,
			CategoryID:   diningID,
			CategoryName: "Dining Out",
			Priority:     20,
			Enabled:      true,
		},
	}
}

func loadedController(t *testing.T, store *mock.RecordStore) *Controller {
	t.Helper()
	controller := NewController(store)
	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return controller
}

func TestCreateAppendsStoreCopy(t *testing.T) {
	store := &mock.RecordStore{}
	controller := loadedController(t, store)

	created, err := controller.Create(context.Background(), adapter.RuleRequest{
		Pattern:    "payroll",
		MatchType:  entity.MatchTypeContains,
		CategoryID: groceriesID,
		Priority:   5,
		Enabled:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("created rule should carry the store-assigned ID")
	}
	if len(controller.Rules()) != 1 {
		t.Errorf("got %d rules, want 1", len(controller.Rules()))
	}
}

func TestDeleteRemovesLocally(t *testing.T) {
	rules := sampleRules()
	store := &mock.RecordStore{Rules: rules}
	controller := loadedController(t, store)

	if err := controller.Delete(context.Background(), rules[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(controller.Rules()) != 1 || controller.Rules()[0].ID != rules[1].ID {
		t.Errorf("rules after delete = %v", controller.Rules())
	}
}

func TestToggleEnabledPersistsFullRule(t *testing.T) {
	rules := sampleRules()
	store := &mock.RecordStore{Rules: rules}
	controller := loadedController(t, store)

	if err := controller.ToggleEnabled(context.Background(), rules[0].ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules[0].Enabled {
		t.Error("local rule should be disabled")
	}
	if len(store.RuleUpdateCalls) != 1 {
		t.Fatalf("got %d update calls, want 1", len(store.RuleUpdateCalls))
	}
	// The store takes a full replace, so the unchanged fields ride along.
	req := store.RuleUpdateCalls[0]
	if req.Pattern != "market" || req.Priority != 10 || req.Enabled {
		t.Errorf("update payload = %+v", req)
	}
}

func TestToggleEnabledRollsBackOnFailure(t *testing.T) {
	rules := sampleRules()
	store := &mock.RecordStore{Rules: rules, RuleUpdateErr: domainerror.ErrStoreUnavailable}
	controller := loadedController(t, store)

	err := controller.ToggleEnabled(context.Background(), rules[0].ID, false)
	if !errors.Is(err, domainerror.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}
	if !rules[0].Enabled {
		t.Error("failed toggle should roll the flag back")
	}
}

func TestToggleEnabledUnknownRule(t *testing.T) {
	controller := loadedController(t, &mock.RecordStore{})

	err := controller.ToggleEnabled(context.Background(), uuid.New(), true)
	if !errors.Is(err, domainerror.ErrRuleNotFound) {
		t.Errorf("error = %v, want ErrRuleNotFound", err)
	}
}

func TestPreviewMatch(t *testing.T) {
	store := &mock.RecordStore{Rules: sampleRules()}
	controller := loadedController(t, store)

	tests := []struct {
		name     string
		merchant string
		want     string // matched category name, "" for no match
	}{
		{name: "contains match", merchant: "Corner Market #12", want: "Groceries"},
		{name: "regex match is case-insensitive", merchant: "TRATTORIA Roma", want: "Dining Out"},
		{name: "no match", merchant: "Gas Station", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := controller.PreviewMatch(tt.merchant)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("matched %q, want none", got.CategoryName)
			case tt.want != "" && (got == nil || got.CategoryName != tt.want):
				t.Errorf("match = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestTestDelegatesToStore(t *testing.T) {
	store := &mock.RecordStore{Rules: sampleRules()}
	controller := loadedController(t, store)

	result, err := controller.Test(context.Background(), "Corner Market")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Matched || result.CategoryName != "Groceries" {
		t.Errorf("result = %+v", result)
	}
}
