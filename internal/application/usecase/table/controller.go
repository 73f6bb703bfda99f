// Package table implements the transaction table controller: it holds the
// view state (search term, sort config), derives the visible projection of
// the record list, and orchestrates inline row edits through the edit
// session, including the nested category-creation sub-flow.
package table

import (
	"context"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/application/usecase/editsession"
	"github.com/finpilot/client/internal/application/usecase/projection"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/internal/domain/valueobject"
)

// Controller is the transaction table controller.
// Not safe for concurrent use; access is serialized by the UI event loop.
type Controller struct {
	engine  *projection.Engine
	session *editsession.Session

	transactions []*entity.Transaction
	categories   []*entity.Category

	searchTerm string
	sortConfig valueobject.SortConfig

	// onSaved is invoked with the server-confirmed record after a
	// successful save so the owner can merge or refresh the list.
	onSaved func(*entity.Transaction)
}

// NewController creates a table controller. onSaved may be nil.
func NewController(store adapter.RecordStore, onSaved func(*entity.Transaction)) *Controller {
	return &Controller{
		engine:  projection.NewEngine(),
		session: editsession.NewSession(store),
		onSaved: onSaved,
	}
}

// SetTransactions replaces the record list the table renders.
func (c *Controller) SetTransactions(transactions []*entity.Transaction) {
	c.transactions = transactions
}

// SetCategories replaces the category list offered by the row selector.
func (c *Controller) SetCategories(categories []*entity.Category) {
	c.categories = categories
}

// Categories returns the categories offered by the row selector.
func (c *Controller) Categories() []*entity.Category {
	return c.categories
}

// SetSearch updates the search term.
func (c *Controller) SetSearch(term string) {
	c.searchTerm = term
}

// Search returns the current search term.
func (c *Controller) Search() string {
	return c.searchTerm
}

// ToggleSort applies a click on a sortable column header.
func (c *Controller) ToggleSort(key valueobject.SortKey) {
	c.sortConfig = c.sortConfig.Toggle(key)
}

// Sort returns the current sort configuration.
func (c *Controller) Sort() valueobject.SortConfig {
	return c.sortConfig
}

// Visible returns the filtered and sorted projection of the record list.
// The projection never depends on edit-session state.
func (c *Controller) Visible() []*entity.Transaction {
	return c.engine.Project(projection.Input{
		Transactions: c.transactions,
		Search:       c.searchTerm,
		Sort:         c.sortConfig,
	})
}

// Session exposes the edit session for draft field access.
func (c *Controller) Session() *editsession.Session {
	return c.session
}

// EditRow begins an inline edit on the row with the given ID.
func (c *Controller) EditRow(id string) error {
	for _, txn := range c.transactions {
		if txn.ID == id {
			return c.session.BeginEdit(txn)
		}
	}
	return domainerror.NewStoreError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// CancelEdit discards the row's drafts and leaves edit mode.
func (c *Controller) CancelEdit() {
	c.session.Cancel()
}

// SaveEdit saves the in-progress row edit. On success the confirmed record
// is handed to the owner's merge hook and the table leaves edit mode.
func (c *Controller) SaveEdit(ctx context.Context) error {
	result, err := c.session.Save(ctx)
	if err != nil {
		return err
	}
	if result.Applied && result.Transaction != nil && c.onSaved != nil {
		c.onSaved(result.Transaction)
	}
	return nil
}
