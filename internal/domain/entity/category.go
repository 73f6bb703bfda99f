// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// CategoryType represents the optional type tag of a category.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the color applied when a category is created
// without one.
const DefaultCategoryColor = "#2979ff"

// Category represents a user-defined transaction category.
// Categories are created on demand (including inline from the transaction
// editor) and referenced by zero or more transactions; deleting a category
// never cascades to transactions on the client.
type Category struct {
	ID       uuid.UUID
	Name     string
	ColorHex string
	Type     CategoryType // Optional; empty when the store variant has no type tag
}
