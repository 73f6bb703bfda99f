// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountRef identifies the source bank account of a synced transaction.
type AccountRef struct {
	ID   string
	Name string
}

// Transaction represents a financial transaction owned by the record store.
// The client never invents transaction IDs; they are opaque, stable strings
// assigned by the store or the aggregation provider.
type Transaction struct {
	ID                       string
	ProviderTransactionID    string
	Date                     time.Time // Calendar date, no time component
	Description              string
	Amount                   decimal.Decimal // Sign convention is view-dependent, see valueobject.SignConvention
	Category                 *Category       // Optional user category
	ProviderCategory         string          // Coarse provider label, e.g. "FOOD_AND_DRINK"
	ProviderDetailedCategory string          // Detailed provider label
	Account                  *AccountRef     // Optional source account
}

// CategoryName returns the name to display for this transaction: the user
// category if linked, otherwise the provider label with underscores replaced,
// otherwise "Uncategorized".
func (t *Transaction) CategoryName() string {
	if t.Category != nil {
		return t.Category.Name
	}
	if t.ProviderCategory != "" {
		return strings.ReplaceAll(t.ProviderCategory, "_", " ")
	}
	return "Uncategorized"
}

// SyncResult represents the outcome of a provider sync triggered by the client.
type SyncResult struct {
	Status string
	Count  int
}
