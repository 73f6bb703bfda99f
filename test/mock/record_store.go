// Package mock provides an in-memory RecordStore double for unit tests.
package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
)

// UpdateCall records one UpdateTransaction invocation.
type UpdateCall struct {
	ID      string
	Request adapter.UpdateTransactionRequest
}

// RecordStore is a configurable in-memory adapter.RecordStore. Zero values
// behave as an empty, always-succeeding store; set the *Err fields to force
// failures and the *Func fields to override behavior per test.
type RecordStore struct {
	Transactions []*entity.Transaction
	Categories   []*entity.Category
	Rules        []*entity.Rule

	UpdateCalls      []UpdateCall
	CreateCalls      []adapter.CreateTransactionRequest
	DeleteCalls      []string
	CategoryCreates  []adapter.CreateCategoryRequest
	RuleUpdateCalls  []adapter.RuleRequest
	SyncCalls       int
	ListCalls       int
	CategoryLists   int

	ListErr           error
	UpdateErr         error
	CreateErr         error
	DeleteErr         error
	SyncErr           error
	CreateCategoryErr error
	RuleUpdateErr     error

	// UpdateFunc, when set, runs instead of the default update behavior.
	// Used to simulate a session cancel while the request is in flight.
	UpdateFunc func(ctx context.Context, id string, req adapter.UpdateTransactionRequest) (*entity.Transaction, error)
}

var _ adapter.RecordStore = (*RecordStore)(nil)

func (s *RecordStore) ListTransactions(_ context.Context) ([]*entity.Transaction, error) {
	s.ListCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Transactions, nil
}

func (s *RecordStore) UpdateTransaction(ctx context.Context, id string, req adapter.UpdateTransactionRequest) (*entity.Transaction, error) {
	s.UpdateCalls = append(s.UpdateCalls, UpdateCall{ID: id, Request: req})
	if s.UpdateFunc != nil {
		return s.UpdateFunc(ctx, id, req)
	}
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}

	for _, txn := range s.Transactions {
		if txn.ID != id {
			continue
		}
		updated := *txn
		if req.Description != nil {
			updated.Description = *req.Description
		}
		if req.Category.IsNone() {
			updated.Category = nil
		} else if categoryID, ok := req.Category.ID(); ok {
			updated.Category = s.findCategory(categoryID)
		}
		return &updated, nil
	}
	return nil, nil
}

func (s *RecordStore) CreateTransaction(_ context.Context, req adapter.CreateTransactionRequest) (*entity.Transaction, error) {
	s.CreateCalls = append(s.CreateCalls, req)
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	txn := &entity.Transaction{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.CategoryID != nil {
		txn.Category = s.findCategory(*req.CategoryID)
	}
	return txn, nil
}

func (s *RecordStore) DeleteTransaction(_ context.Context, id string) error {
	s.DeleteCalls = append(s.DeleteCalls, id)
	return s.DeleteErr
}

func (s *RecordStore) SyncTransactions(_ context.Context) (*entity.SyncResult, error) {
	s.SyncCalls++
	if s.SyncErr != nil {
		return nil, s.SyncErr
	}
	return &entity.SyncResult{Status: "COMPLETE", Count: 0}, nil
}

func (s *RecordStore) ListCategories(_ context.Context) ([]*entity.Category, error) {
	s.CategoryLists++
	return s.Categories, nil
}

func (s *RecordStore) CreateCategory(_ context.Context, req adapter.CreateCategoryRequest) (*entity.Category, error) {
	s.CategoryCreates = append(s.CategoryCreates, req)
	if s.CreateCategoryErr != nil {
		return nil, s.CreateCategoryErr
	}
	color := req.ColorHex
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	category := &entity.Category{ID: uuid.New(), Name: req.Name, ColorHex: color, Type: req.Type}
	s.Categories = append(s.Categories, category)
	return category, nil
}

func (s *RecordStore) ListRules(_ context.Context) ([]*entity.Rule, error) {
	return s.Rules, nil
}

func (s *RecordStore) CreateRule(_ context.Context, req adapter.RuleRequest) (*entity.Rule, error) {
	rule := &entity.Rule{
		ID:         uuid.New(),
		Pattern:    req.Pattern,
		MatchType:  req.MatchType,
		CategoryID: req.CategoryID,
		Priority:   req.Priority,
		Enabled:    req.Enabled,
	}
	s.Rules = append(s.Rules, rule)
	return rule, nil
}

func (s *RecordStore) UpdateRule(_ context.Context, id uuid.UUID, req adapter.RuleRequest) (*entity.Rule, error) {
	s.RuleUpdateCalls = append(s.RuleUpdateCalls, req)
	if s.RuleUpdateErr != nil {
		return nil, s.RuleUpdateErr
	}
	for _, rule := range s.Rules {
		if rule.ID == id {
			updated := *rule
			updated.Pattern = req.Pattern
			updated.MatchType = req.MatchType
			updated.CategoryID = req.CategoryID
			updated.Priority = req.Priority
			updated.Enabled = req.Enabled
			return &updated, nil
		}
	}
	return nil, nil
}

func (s *RecordStore) DeleteRule(_ context.Context, id uuid.UUID) error {
	next := make([]*entity.Rule, 0, len(s.Rules))
	for _, rule := range s.Rules {
		if rule.ID != id {
			next = append(next, rule)
		}
	}
	s.Rules = next
	return nil
}

func (s *RecordStore) TestRule(_ context.Context, merchant string) (*adapter.RuleTestResult, error) {
	matched := entity.FirstMatch(s.Rules, merchant)
	if matched == nil {
		return &adapter.RuleTestResult{}, nil
	}
	return &adapter.RuleTestResult{
		Matched:      true,
		RuleID:       &matched.ID,
		CategoryID:   &matched.CategoryID,
		CategoryName: matched.CategoryName,
	}, nil
}

func (s *RecordStore) findCategory(id uuid.UUID) *entity.Category {
	for _, category := range s.Categories {
		if category.ID == id {
			return category
		}
	}
	return nil
}
