// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finpilot/client/internal/domain/entity"
	"github.com/finpilot/client/internal/domain/valueobject"
)

// UpdateTransactionRequest carries a partial transaction update. Nil fields
// are omitted from the request entirely so the store leaves them unchanged;
// the category is a tri-state so "clear" and "don't touch" stay distinct.
type UpdateTransactionRequest struct {
	Description *string
	Category    valueobject.CategorySelection
	// Force bypasses the store's duplicate check once. Only meaningful for
	// stores that run duplicate detection on update.
	Force bool
}

// IsEmpty reports whether the request carries no field changes at all.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.Description == nil && r.Category.IsUnchanged()
}

// CreateTransactionRequest carries a manual transaction entry.
type CreateTransactionRequest struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	// Force bypasses the store's duplicate check once.
	Force bool
}

// CreateCategoryRequest carries a category creation. ColorHex is optional;
// the store defaults it when empty.
type CreateCategoryRequest struct {
	Name     string
	ColorHex string
	Type     entity.CategoryType
}

// RuleRequest carries a rule creation or full-replace update.
type RuleRequest struct {
	Pattern    string
	MatchType  entity.MatchType
	CategoryID uuid.UUID
	Priority   int
	Enabled    bool
}

// RuleTestResult represents the store's answer to a test-merchant request.
type RuleTestResult struct {
	Matched      bool
	RuleID       *uuid.UUID
	CategoryID   *uuid.UUID
	CategoryName string
}

// RecordStore is the boundary to the external system of truth for
// transactions, categories, and rules. All persistence and business rules
// live behind it; the client only issues the operations below.
type RecordStore interface {
	// ListTransactions retrieves all transactions visible to the caller.
	ListTransactions(ctx context.Context) ([]*entity.Transaction, error)

	// UpdateTransaction sends a partial update for exactly the fields set in
	// the request and returns the updated record. Returns a *DuplicateError
	// (via errors.As) when the store reports a conflict and Force is false.
	UpdateTransaction(ctx context.Context, id string, req UpdateTransactionRequest) (*entity.Transaction, error)

	// CreateTransaction creates a manual entry. Returns a *DuplicateError on
	// conflict when Force is false.
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*entity.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, id string) error

	// SyncTransactions asks the store to pull fresh data from the
	// aggregation provider.
	SyncTransactions(ctx context.Context) (*entity.SyncResult, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory creates a new category and returns it.
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*entity.Category, error)

	// ListRules retrieves all auto-categorization rules.
	ListRules(ctx context.Context) ([]*entity.Rule, error)

	// CreateRule creates a new rule and returns it.
	CreateRule(ctx context.Context, req RuleRequest) (*entity.Rule, error)

	// UpdateRule replaces a rule's fields and returns the updated rule.
	UpdateRule(ctx context.Context, id uuid.UUID, req RuleRequest) (*entity.Rule, error)

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, id uuid.UUID) error

	// TestRule asks the store which rule, if any, would match the merchant.
	TestRule(ctx context.Context, merchant string) (*RuleTestResult, error)
}
