// Package recordstore implements the RecordStore port over the finpilot
// REST API.
package recordstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
)

// categoryResponse is the wire shape of a category.
type categoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"colorHex"`
	Type     string `json:"type,omitempty"`
}

// accountResponse is the wire shape of a source account reference.
type accountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// transactionResponse is the wire shape of a transaction. Amounts arrive as
// JSON numbers; decimal.Decimal unmarshals both quoted and bare numbers.
type transactionResponse struct {
	ID                    string            `json:"id"`
	PlaidTransactionID    string            `json:"plaidTransactionId,omitempty"`
	Amount                decimal.Decimal   `json:"amount"`
	Date                  string            `json:"date"`
	Description           string            `json:"description"`
	PlaidCategory         string            `json:"plaidCategory,omitempty"`
	PlaidDetailedCategory string            `json:"plaidDetailedCategory,omitempty"`
	Category              *categoryResponse `json:"category"`
	Account               *accountResponse  `json:"account,omitempty"`
}

// syncResponse is the wire shape of a sync result.
type syncResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// createCategoryRequest is the wire shape of a category creation.
type createCategoryRequest struct {
	Name     string `json:"name"`
	ColorHex string `json:"colorHex,omitempty"`
	Type     string `json:"type,omitempty"`
}

// createTransactionRequest is the wire shape of a manual entry.
type createTransactionRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *string         `json:"categoryId,omitempty"`
}

// ruleResponse is the wire shape of a rule.
type ruleResponse struct {
	ID           string `json:"id"`
	Pattern      string `json:"pattern"`
	MatchType    string `json:"matchType"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
	Priority     int    `json:"priority"`
	Enabled      bool   `json:"enabled"`
}

// ruleRequest is the wire shape of a rule creation or update.
type ruleRequest struct {
	Pattern    string `json:"pattern"`
	MatchType  string `json:"matchType"`
	CategoryID string `json:"categoryId"`
	Priority   int    `json:"priority"`
	Enabled    bool   `json:"enabled"`
}

// ruleTestRequest is the wire shape of a rule test.
type ruleTestRequest struct {
	Merchant string `json:"merchant"`
}

// ruleTestResponse is the wire shape of a rule test result.
type ruleTestResponse struct {
	Matched      bool    `json:"matched"`
	RuleID       *string `json:"ruleId,omitempty"`
	CategoryID   *string `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
}

// errorResponse is the generic error body shape.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// conflictRecord is one side of a 409 duplicate body.
type conflictRecord struct {
	ID           any             `json:"id"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Merchant     string          `json:"merchant"`
	Description  string          `json:"description"`
	CategoryName string          `json:"categoryName"`
}

// conflictResponse is the 409 problem-detail body reported on duplicates.
type conflictResponse struct {
	Code      string          `json:"code"`
	Detail    string          `json:"detail"`
	Existing  *conflictRecord `json:"existing"`
	Candidate *conflictRecord `json:"candidate"`
}

func (r *categoryResponse) toEntity() (*entity.Category, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &entity.Category{
		ID:       id,
		Name:     r.Name,
		ColorHex: r.ColorHex,
		Type:     entity.CategoryType(r.Type),
	}, nil
}

func (r *transactionResponse) toEntity() (*entity.Transaction, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, err
	}

	txn := &entity.Transaction{
		ID:                       r.ID,
		ProviderTransactionID:    r.PlaidTransactionID,
		Date:                     date,
		Description:              r.Description,
		Amount:                   r.Amount,
		ProviderCategory:         r.PlaidCategory,
		ProviderDetailedCategory: r.PlaidDetailedCategory,
	}
	if r.Category != nil {
		category, err := r.Category.toEntity()
		if err != nil {
			return nil, err
		}
		txn.Category = category
	}
	if r.Account != nil {
		txn.Account = &entity.AccountRef{ID: r.Account.ID, Name: r.Account.Name}
	}
	return txn, nil
}

func (r *ruleResponse) toEntity() (*entity.Rule, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return nil, err
	}
	return &entity.Rule{
		ID:           id,
		Pattern:      r.Pattern,
		MatchType:    entity.MatchType(r.MatchType),
		CategoryID:   categoryID,
		CategoryName: r.CategoryName,
		Priority:     r.Priority,
		Enabled:      r.Enabled,
	}, nil
}

func (r *conflictRecord) toDomain() *domainerror.DuplicateRecord {
	if r == nil {
		return nil
	}
	merchant := r.Merchant
	if merchant == "" {
		merchant = r.Description
	}
	record := &domainerror.DuplicateRecord{
		Date:         r.Date,
		Amount:       r.Amount.String(),
		Merchant:     merchant,
		CategoryName: r.CategoryName,
	}
	if r.ID != nil {
		record.ID = stringifyID(r.ID)
	}
	return record
}
