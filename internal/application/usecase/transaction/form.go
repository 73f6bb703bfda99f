package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/internal/domain/valueobject"
)

// Form validation errors.
var (
	// ErrMissingFields is returned when a required form field is blank.
	ErrMissingFields = errors.New("date, description and amount are required")

	// ErrInvalidAmount is returned when the amount field does not parse as a number.
	ErrInvalidAmount = errors.New("amount must be a number")
)

// Form is the manual add/edit transaction form controller. It validates
// input client-side, submits to the record store, and holds the duplicate
// conflict state when the store reports a collision so the caller can offer
// an explicit "save anyway" action.
// Not safe for concurrent use; access is serialized by the UI event loop.
type Form struct {
	store adapter.RecordStore

	// Editing is nil for a new entry, or the record being edited.
	editing *entity.Transaction

	Date        string // "YYYY-MM-DD"
	Description string
	Amount      string // Raw input, parsed on submit
	CategoryID  *uuid.UUID

	submitting bool
	conflict   *domainerror.DuplicateError
}

// NewForm creates a form for a new manual entry.
func NewForm(store adapter.RecordStore) *Form {
	return &Form{store: store}
}

// NewEditForm creates a form seeded from an existing record.
func NewEditForm(store adapter.RecordStore, txn *entity.Transaction) *Form {
	form := &Form{
		store:       store,
		editing:     txn,
		Date:        txn.Date.Format("2006-01-02"),
		Description: txn.Description,
		Amount:      txn.Amount.String(),
	}
	if txn.Category != nil {
		id := txn.Category.ID
		form.CategoryID = &id
	}
	return form
}

// Submitting reports whether a request is in flight; callers disable the
// submit control while true.
func (f *Form) Submitting() bool {
	return f.submitting
}

// Conflict returns the duplicate conflict from the last submit, or nil.
func (f *Form) Conflict() *domainerror.DuplicateError {
	return f.conflict
}

// ClearConflict drops the conflict panel. Called on any field edit so a
// stale conflict never survives changed input.
func (f *Form) ClearConflict() {
	f.conflict = nil
}

// Submit validates and submits the form. A duplicate collision is captured
// into the conflict state and reported via ErrDuplicateTransaction; other
// failures are returned as-is with the form state intact.
func (f *Form) Submit(ctx context.Context) (*entity.Transaction, error) {
	return f.submit(ctx, false)
}

// ForceSubmit reissues the submission with the force flag, bypassing the
// store's duplicate check once.
func (f *Form) ForceSubmit(ctx context.Context) (*entity.Transaction, error) {
	return f.submit(ctx, true)
}

func (f *Form) submit(ctx context.Context, force bool) (*entity.Transaction, error) {
	if f.submitting {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeSaveInFlight,
			"a submit request is already in flight",
			domainerror.ErrSaveInFlight,
		)
	}

	description := strings.TrimSpace(f.Description)
	if f.Date == "" || description == "" || strings.TrimSpace(f.Amount) == "" {
		return nil, ErrMissingFields
	}

	date, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return nil, ErrMissingFields
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return nil, ErrInvalidAmount
	}

	f.submitting = true
	f.conflict = nil
	txn, err := f.dispatch(ctx, date, description, amount, force)
	f.submitting = false

	if err != nil {
		var dup *domainerror.DuplicateError
		if errors.As(err, &dup) {
			f.conflict = dup
		}
		return nil, err
	}

	return txn, nil
}

func (f *Form) dispatch(ctx context.Context, date time.Time, description string, amount decimal.Decimal, force bool) (*entity.Transaction, error) {
	req := adapter.CreateTransactionRequest{
		Date:        date,
		Description: description,
		Amount:      amount,
		CategoryID:  f.CategoryID,
		Force:       force,
	}
	if f.editing == nil {
		return f.store.CreateTransaction(ctx, req)
	}

	update := adapter.UpdateTransactionRequest{Description: &description, Force: force}
	if f.CategoryID != nil {
		update.Category = valueobject.CategoryID(*f.CategoryID)
	}
	return f.store.UpdateTransaction(ctx, f.editing.ID, update)
}
