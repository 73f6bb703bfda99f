// Package transaction contains transaction list and form controllers.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
)

// ListController owns the in-memory transaction list: loading it from the
// record store, triggering provider syncs, and the delete flow with an
// explicit confirmation state and optimistic removal.
// Not safe for concurrent use; access is serialized by the UI event loop.
type ListController struct {
	store adapter.RecordStore

	transactions []*entity.Transaction

	// Delete confirmation state. The confirmation dialog is plain state
	// plus an injected side effect, never a global browser confirm.
	deleteRequested bool
	deleteID        string

	// onChanged is invoked after the list content changes so dependents
	// (projection, summaries) can recompute.
	onChanged func()
}

// NewListController creates a list controller bound to the record store.
// onChanged may be nil.
func NewListController(store adapter.RecordStore, onChanged func()) *ListController {
	return &ListController{store: store, onChanged: onChanged}
}

// Transactions returns the current in-memory record list. Callers must not
// mutate the returned slice.
func (c *ListController) Transactions() []*entity.Transaction {
	return c.transactions
}

// Load replaces the in-memory list with the store's current records.
func (c *ListController) Load(ctx context.Context) error {
	transactions, err := c.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	c.transactions = transactions
	c.notify()
	return nil
}

// Sync asks the store to pull fresh provider data, then reloads the list.
func (c *ListController) Sync(ctx context.Context) (*entity.SyncResult, error) {
	result, err := c.store.SyncTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sync transactions: %w", err)
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Replace swaps one record in place after a confirmed server-side update.
func (c *ListController) Replace(updated *entity.Transaction) {
	for i, txn := range c.transactions {
		if txn.ID == updated.ID {
			next := make([]*entity.Transaction, len(c.transactions))
			copy(next, c.transactions)
			next[i] = updated
			c.transactions = next
			c.notify()
			return
		}
	}
}

// RequestDelete enters the delete confirmation state for the given record.
func (c *ListController) RequestDelete(id string) {
	c.deleteRequested = true
	c.deleteID = id
}

// PendingDelete returns the record awaiting delete confirmation, if any.
func (c *ListController) PendingDelete() (string, bool) {
	return c.deleteID, c.deleteRequested
}

// CancelDelete leaves the confirmation state without touching the list.
func (c *ListController) CancelDelete() {
	c.deleteRequested = false
	c.deleteID = ""
}

// ConfirmDelete removes the record optimistically, then issues the delete.
// On store failure the record is restored at its original position and the
// error is surfaced; the user retries manually.
func (c *ListController) ConfirmDelete(ctx context.Context) error {
	if !c.deleteRequested {
		return domainerror.NewSessionError(
			domainerror.ErrCodeNoActiveEdit,
			"no delete is awaiting confirmation",
			domainerror.ErrNoActiveEdit,
		)
	}

	id := c.deleteID
	c.deleteRequested = false
	c.deleteID = ""

	index := -1
	var removed *entity.Transaction
	for i, txn := range c.transactions {
		if txn.ID == id {
			index = i
			removed = txn
			break
		}
	}
	if index == -1 {
		return domainerror.NewStoreError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	// Optimistic removal; rolled back below if the store refuses.
	next := make([]*entity.Transaction, 0, len(c.transactions)-1)
	next = append(next, c.transactions[:index]...)
	next = append(next, c.transactions[index+1:]...)
	c.transactions = next
	c.notify()

	if err := c.store.DeleteTransaction(ctx, id); err != nil {
		slog.Warn("Delete failed, restoring record", "transaction_id", id, "error", err)
		restored := make([]*entity.Transaction, 0, len(c.transactions)+1)
		restored = append(restored, c.transactions[:index]...)
		restored = append(restored, removed)
		restored = append(restored, c.transactions[index:]...)
		c.transactions = restored
		c.notify()
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

func (c *ListController) notify() {
	if c.onChanged != nil {
		c.onChanged()
	}
}
