// Package fakestore is an in-process double of the external record store,
// used by demo mode and the integration tests. It implements the same REST
// surface and semantics (partial updates, duplicate conflicts, rule
// application on ingest) over an in-memory sqlite database; it is not a
// product backend.
package fakestore

import (
	"database/sql"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finpilot/client/internal/domain/entity"
)

// CategoryModel represents the categories table.
type CategoryModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	ColorHex  string `gorm:"type:varchar(7);not null"`
	Type      string `gorm:"type:varchar(10)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// TransactionModel represents the transactions table.
type TransactionModel struct {
	ID                    string          `gorm:"type:uuid;primaryKey"`
	PlaidTransactionID    string          `gorm:"type:varchar(64);index"`
	Date                  time.Time       `gorm:"type:date;not null;index"`
	Description           string          `gorm:"type:varchar(255);not null"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PlaidCategory         string          `gorm:"type:varchar(64)"`
	PlaidDetailedCategory string          `gorm:"type:varchar(64)"`
	CategoryID            *string         `gorm:"type:uuid;index"`
	AccountID             string          `gorm:"type:varchar(64)"`
	AccountName           string          `gorm:"type:varchar(128)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// RuleModel represents the rules table.
type RuleModel struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Pattern    string `gorm:"type:varchar(255);not null"`
	MatchType  string `gorm:"type:varchar(16);not null"`
	CategoryID string `gorm:"type:uuid;not null"`
	Priority   int    `gorm:"not null;default:100"`
	Enabled    bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the RuleModel.
func (RuleModel) TableName() string {
	return "rules"
}

// openDB opens a private in-memory sqlite database and migrates the schema.
func openDB() (*gorm.DB, error) {
	dbSQL, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, err
	}

	// A single connection keeps every session on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&CategoryModel{}, &TransactionModel{}, &RuleModel{}); err != nil {
		return nil, err
	}
	return db, nil
}

func (m *CategoryModel) toResponse() map[string]any {
	response := map[string]any{
		"id":       m.ID,
		"name":     m.Name,
		"colorHex": m.ColorHex,
	}
	if m.Type != "" {
		response["type"] = m.Type
	}
	return response
}

func (m *TransactionModel) toResponse() map[string]any {
	response := map[string]any{
		"id":          m.ID,
		"date":        m.Date.Format("2006-01-02"),
		"description": m.Description,
		"amount":      m.Amount,
	}
	if m.PlaidTransactionID != "" {
		response["plaidTransactionId"] = m.PlaidTransactionID
	}
	if m.PlaidCategory != "" {
		response["plaidCategory"] = m.PlaidCategory
	}
	if m.PlaidDetailedCategory != "" {
		response["plaidDetailedCategory"] = m.PlaidDetailedCategory
	}
	if m.Category != nil {
		response["category"] = m.Category.toResponse()
	} else {
		response["category"] = nil
	}
	if m.AccountID != "" {
		response["account"] = map[string]any{"id": m.AccountID, "name": m.AccountName}
	}
	return response
}

func (m *RuleModel) toResponse() map[string]any {
	response := map[string]any{
		"id":         m.ID,
		"pattern":    m.Pattern,
		"matchType":  m.MatchType,
		"categoryId": m.CategoryID,
		"priority":   m.Priority,
		"enabled":    m.Enabled,
	}
	if m.Category != nil {
		response["categoryName"] = m.Category.Name
	}
	return response
}

// toRuleEntity converts a RuleModel to the domain rule used for matching.
func (m *RuleModel) toRuleEntity() *entity.Rule {
	rule := &entity.Rule{
		Pattern:   m.Pattern,
		MatchType: entity.MatchType(m.MatchType),
		Priority:  m.Priority,
		Enabled:   m.Enabled,
	}
	if m.Category != nil {
		rule.CategoryName = m.Category.Name
	}
	return rule
}
