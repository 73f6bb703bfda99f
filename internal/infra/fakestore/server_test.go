package fakestore

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/internal/domain/valueobject"
	"github.com/finpilot/client/internal/integration/recordstore"
)

// newStore spins up a seeded fake store and the HTTP client pointed at it,
// the same wiring the demo mode uses.
func newStore(t *testing.T) adapter.RecordStore {
	t.Helper()

	server, err := NewServer()
	if err != nil {
		t.Fatalf("failed to create fake store: %v", err)
	}
	if err := server.Seed(); err != nil {
		t.Fatalf("failed to seed fake store: %v", err)
	}

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return recordstore.NewClient(httpServer.URL+"/api/v1", 5*time.Second)
}

func findByDescription(txns []*entity.Transaction, description string) *entity.Transaction {
	for _, txn := range txns {
		if txn.Description == description {
			return txn
		}
	}
	return nil
}

func TestSeededListAndUpdate(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	transactions, err := store.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 4 {
		t.Fatalf("got %d seeded transactions, want 4", len(transactions))
	}

	coffee := findByDescription(transactions, "Coffee Shop")
	if coffee == nil {
		t.Fatal("seeded coffee transaction missing")
	}
	if coffee.Category != nil {
		t.Error("coffee starts uncategorized")
	}
	if coffee.ProviderCategory != "FOOD_AND_DRINK" {
		t.Errorf("provider category = %q", coffee.ProviderCategory)
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var dining *entity.Category
	for _, c := range categories {
		if c.Name == "Dining Out" {
			dining = c
		}
	}
	if dining == nil {
		t.Fatal("seeded Dining Out category missing")
	}

	// Assign a category, then clear it again with the explicit-null leg.
	updated, err := store.UpdateTransaction(ctx, coffee.ID, adapter.UpdateTransactionRequest{
		Category: valueobject.CategoryID(dining.ID),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Category == nil || updated.Category.Name != "Dining Out" {
		t.Errorf("category after set = %v", updated.Category)
	}
	if updated.Description != "Coffee Shop" {
		t.Errorf("description changed unexpectedly: %q", updated.Description)
	}

	cleared, err := store.UpdateTransaction(ctx, coffee.ID, adapter.UpdateTransactionRequest{
		Category: valueobject.CategoryNone(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.Category != nil {
		t.Errorf("category after clear = %v", cleared.Category)
	}
}

func TestCreateAppliesRules(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// The seeded "market" rule should categorize this as Groceries.
	created, err := store.CreateTransaction(ctx, adapter.CreateTransactionRequest{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Night Market Stall",
		Amount:      decimal.RequireFromString("15.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Category == nil || created.Category.Name != "Groceries" {
		t.Errorf("rule did not apply: category = %v", created.Category)
	}
}

func TestDuplicateConflictAndForce(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	req := adapter.CreateTransactionRequest{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Hardware Store",
		Amount:      decimal.RequireFromString("99.00"),
	}
	if _, err := store.CreateTransaction(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same date, amount, and normalized merchant collides.
	duplicate := req
	duplicate.Description = "  hardware store. "
	_, err := store.CreateTransaction(ctx, duplicate)
	if !errors.Is(err, domainerror.ErrDuplicateTransaction) {
		t.Fatalf("error = %v, want ErrDuplicateTransaction", err)
	}
	var dup *domainerror.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatal("error is not a *DuplicateError")
	}
	if dup.Existing == nil || dup.Existing.Merchant != "Hardware Store" {
		t.Errorf("existing = %+v", dup.Existing)
	}

	// The force flag bypasses the check once.
	duplicate.Force = true
	if _, err := store.CreateTransaction(ctx, duplicate); err != nil {
		t.Fatalf("forced create failed: %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	transactions, err := store.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.DeleteTransaction(ctx, transactions[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteTransaction(ctx, transactions[0].ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("second delete error = %v, want ErrTransactionNotFound", err)
	}

	remaining, err := store.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != len(transactions)-1 {
		t.Errorf("got %d transactions after delete, want %d", len(remaining), len(transactions)-1)
	}
}

func TestSyncIngestsProviderRecord(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	result, err := store.SyncTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "COMPLETE" || result.Count != 1 {
		t.Errorf("sync result = %+v", result)
	}

	transactions, err := store.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	synced := findByDescription(transactions, "Synced Merchant")
	if synced == nil {
		t.Fatal("synced transaction missing from list")
	}
	if synced.ProviderTransactionID == "" {
		t.Error("synced transaction should carry a provider ID")
	}
}

func TestCategoryCreationRules(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, adapter.CreateCategoryRequest{Name: "Travel"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ColorHex != entity.DefaultCategoryColor {
		t.Errorf("color = %q, want the default", created.ColorHex)
	}

	if _, err := store.CreateCategory(ctx, adapter.CreateCategoryRequest{Name: "Travel"}); err == nil {
		t.Error("duplicate category name should be rejected")
	}
	if _, err := store.CreateCategory(ctx, adapter.CreateCategoryRequest{Name: "Bad Color", ColorHex: "blue"}); err == nil {
		t.Error("non-hex color should be rejected")
	}
}

func TestRuleLifecycleAndTest(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var dining *entity.Category
	for _, c := range categories {
		if c.Name == "Dining Out" {
			dining = c
		}
	}
	if dining == nil {
		t.Fatal("seeded Dining Out category missing")
	}

	created, err := store.CreateRule(ctx, adapter.RuleRequest{
		Pattern:    "^trattoria",
		MatchType:  entity.MatchTypeRegex,
		CategoryID: dining.ID,
		Priority:   5,
		Enabled:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := store.TestRule(ctx, "Trattoria Roma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Matched || result.CategoryName != "Dining Out" {
		t.Errorf("test result = %+v", result)
	}

	disabled := adapter.RuleRequest{
		Pattern:    created.Pattern,
		MatchType:  created.MatchType,
		CategoryID: created.CategoryID,
		Priority:   created.Priority,
		Enabled:    false,
	}
	if _, err := store.UpdateRule(ctx, created.ID, disabled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err = store.TestRule(ctx, "Trattoria Roma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched {
		t.Error("disabled rule should not match")
	}

	if err := store.DeleteRule(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules, err := store.ListRules(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rules {
		if r.ID == created.ID {
			t.Error("deleted rule still listed")
		}
	}
}
