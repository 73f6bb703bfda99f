// Package valueobject defines immutable domain value objects.
package valueobject

import "github.com/shopspring/decimal"

// SignConvention names which amount sign represents an expense on a given
// screen. Provider-synced data reports expenses as positive amounts while
// manual-entry screens use negative expenses, so every formatting or
// aggregation function takes the convention as an explicit parameter instead
// of assuming one.
type SignConvention int

const (
	// PositiveIsExpense: positive amounts are outflows (provider convention).
	PositiveIsExpense SignConvention = iota
	// NegativeIsExpense: negative amounts are outflows (manual-entry convention).
	NegativeIsExpense
)

// IsExpense reports whether the amount is an outflow under the convention.
// Zero amounts are never expenses.
func (c SignConvention) IsExpense(amount decimal.Decimal) bool {
	switch c {
	case PositiveIsExpense:
		return amount.IsPositive()
	case NegativeIsExpense:
		return amount.IsNegative()
	default:
		return false
	}
}

// ExpenseMagnitude returns the positive magnitude of an expense amount,
// or zero when the amount is not an expense under the convention.
func (c SignConvention) ExpenseMagnitude(amount decimal.Decimal) decimal.Decimal {
	if !c.IsExpense(amount) {
		return decimal.Zero
	}
	return amount.Abs()
}
