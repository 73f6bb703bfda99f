// Package projection derives the filtered and sorted view of the
// transaction list. The computation is pure: it never mutates its inputs and
// its output depends only on (records, search term, sort config).
package projection

import (
	"sort"
	"strings"

	"github.com/finpilot/client/internal/domain/entity"
	"github.com/finpilot/client/internal/domain/valueobject"
)

// Input represents the three inputs the projection depends on.
type Input struct {
	Transactions []*entity.Transaction
	Search       string
	Sort         valueobject.SortConfig
}

// Engine computes projections and memoizes the last result: Project re-runs
// the filter and sort only when one of the three inputs changes.
// Engine is not safe for concurrent use; the view runs on a single event loop.
type Engine struct {
	last       Input
	lastResult []*entity.Transaction
	valid      bool
}

// NewEngine creates a new projection engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Project returns the ordered records to render for the given inputs.
// The returned slice is owned by the engine; callers must not mutate it.
func (e *Engine) Project(in Input) []*entity.Transaction {
	if e.valid && sameInputs(e.last, in) {
		return e.lastResult
	}

	e.last = in
	e.lastResult = compute(in)
	e.valid = true
	return e.lastResult
}

// Invalidate drops the memoized result. Callers use it after replacing
// records in place rather than swapping in a new slice.
func (e *Engine) Invalidate() {
	e.valid = false
}

// compute runs the filter and sort steps without memoization.
func compute(in Input) []*entity.Transaction {
	filtered := make([]*entity.Transaction, 0, len(in.Transactions))
	term := strings.ToLower(in.Search)
	for _, txn := range in.Transactions {
		if matches(txn, term) {
			filtered = append(filtered, txn)
		}
	}

	if in.Sort.Key == valueobject.SortKeyNone {
		return filtered
	}

	// Stable sort: equal keys keep their original relative order.
	sort.SliceStable(filtered, func(i, j int) bool {
		cmp := compare(filtered[i], filtered[j], in.Sort.Key)
		if in.Sort.Direction == valueobject.SortDescending {
			cmp = -cmp
		}
		return cmp < 0
	})

	return filtered
}

// matches reports whether a record passes the search filter: the term must
// appear in the description (case-insensitive, missing treated as empty) or
// in the amount's canonical decimal string. An empty term passes everything.
func matches(txn *entity.Transaction, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(txn.Description), term) {
		return true
	}
	return strings.Contains(txn.Amount.String(), term)
}

// compare returns -1, 0, or 1 ordering a before b under the given key.
func compare(a, b *entity.Transaction, key valueobject.SortKey) int {
	switch key {
	case valueobject.SortKeyDate:
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		return 0
	case valueobject.SortKeyAmount:
		return a.Amount.Cmp(b.Amount)
	default:
		return 0
	}
}

// sameInputs reports whether two inputs are identical: same search, same
// sort config, and the same records slice (by identity, not by value, the
// way a memoized view-layer computation keys on its dependencies).
func sameInputs(a, b Input) bool {
	if a.Search != b.Search || a.Sort != b.Sort {
		return false
	}
	if len(a.Transactions) != len(b.Transactions) {
		return false
	}
	return len(a.Transactions) == 0 || &a.Transactions[0] == &b.Transactions[0]
}
