// Package dashboard contains pure aggregation helpers for the dashboard
// widgets: spending-by-category and the recent-transactions strip.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finpilot/client/internal/domain/entity"
	"github.com/finpilot/client/internal/domain/valueobject"
)

// palette is cycled for categories that carry no color of their own.
var palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884d8", "#82ca9d", "#ffc658"}

// CategorySlice is one wedge of the spending breakdown.
type CategorySlice struct {
	Name     string
	Total    decimal.Decimal
	ColorHex string
}

// CategoryBreakdown aggregates expense-side spending per category. The sign
// convention is an explicit parameter: the caller names which sign means
// "expense" on its screen instead of the function assuming one. Slices keep
// first-seen order of their category names.
func CategoryBreakdown(transactions []*entity.Transaction, convention valueobject.SignConvention) []CategorySlice {
	totals := map[string]decimal.Decimal{}
	colors := map[string]string{}
	var order []string

	for _, txn := range transactions {
		magnitude := convention.ExpenseMagnitude(txn.Amount)
		if magnitude.IsZero() {
			continue
		}

		name := txn.CategoryName()
		if _, seen := totals[name]; !seen {
			order = append(order, name)
			if txn.Category != nil && txn.Category.ColorHex != "" {
				colors[name] = txn.Category.ColorHex
			}
		}
		totals[name] = totals[name].Add(magnitude)
	}

	slices := make([]CategorySlice, 0, len(order))
	for i, name := range order {
		color := colors[name]
		if color == "" {
			color = palette[i%len(palette)]
		}
		slices = append(slices, CategorySlice{Name: name, Total: totals[name], ColorHex: color})
	}
	return slices
}

// Recent returns the n newest transactions by date without mutating the
// input. Equal dates keep their original relative order.
func Recent(transactions []*entity.Transaction, n int) []*entity.Transaction {
	if n <= 0 {
		return nil
	}

	sorted := make([]*entity.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
