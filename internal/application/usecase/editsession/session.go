// Package editsession implements the inline edit flow of the transaction
// table: at most one record is in edit mode at a time, drafts are seeded
// from the record when the edit begins, and Save dispatches a partial update
// carrying only the fields touched during the session.
package editsession

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/internal/domain/valueobject"
)

// State represents the edit session state.
type State int

const (
	// StateViewing means no record is being edited.
	StateViewing State = iota
	// StateEditing means exactly one record's row is in edit mode.
	StateEditing
)

// SentinelNewCategory is the reserved selector value for "create a new
// category". Real category identifiers are UUIDs, so this value can never
// collide with one.
const SentinelNewCategory = "__create_new__"

// SaveResult reports the outcome of a save.
type SaveResult struct {
	// Applied is false when the response arrived after the session had
	// already been cancelled; such results are dropped, not reapplied.
	Applied     bool
	Transaction *entity.Transaction
}

// Session is the edit session state machine. It is not safe for concurrent
// use; access is serialized by the UI event loop.
type Session struct {
	store adapter.RecordStore

	state     State
	editingID string

	// Values at the moment the edit began, used to compute the changed set.
	originalDescription string
	originalCategoryID  *uuid.UUID

	draftDescription string
	draftCategoryID  *uuid.UUID

	descriptionTouched bool
	categoryTouched    bool

	pending    bool
	generation uint64

	dialog categoryDialog
}

// NewSession creates an edit session bound to the given record store.
func NewSession(store adapter.RecordStore) *Session {
	return &Session{store: store}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// EditingID returns the ID of the record in edit mode, or "" when viewing.
func (s *Session) EditingID() string {
	if s.state != StateEditing {
		return ""
	}
	return s.editingID
}

// Pending reports whether a save request is in flight. Callers disable the
// save control while pending to prevent duplicate submission.
func (s *Session) Pending() bool {
	return s.pending
}

// DraftDescription returns the current draft description.
func (s *Session) DraftDescription() string {
	return s.draftDescription
}

// DraftCategoryID returns the current draft category, nil meaning none.
func (s *Session) DraftCategoryID() *uuid.UUID {
	return s.draftCategoryID
}

// BeginEdit transitions Viewing -> Editing(id), seeding the drafts from the
// record's current persisted values.
func (s *Session) BeginEdit(txn *entity.Transaction) error {
	if s.state == StateEditing {
		return domainerror.NewSessionError(
			domainerror.ErrCodeEditInProgress,
			"finish or cancel the current edit first",
			domainerror.ErrEditInProgress,
		)
	}

	s.state = StateEditing
	s.editingID = txn.ID
	s.originalDescription = txn.Description
	s.draftDescription = txn.Description
	s.originalCategoryID = nil
	s.draftCategoryID = nil
	if txn.Category != nil {
		id := txn.Category.ID
		s.originalCategoryID = &id
		draft := id
		s.draftCategoryID = &draft
	}
	s.descriptionTouched = false
	s.categoryTouched = false
	return nil
}

// Cancel discards all drafts and returns to Viewing without any network
// call. A save response that arrives after Cancel is dropped.
func (s *Session) Cancel() {
	s.generation++
	s.reset()
}

// SetDraftDescription updates the draft description.
func (s *Session) SetDraftDescription(description string) error {
	if s.state != StateEditing {
		return domainerror.NewSessionError(
			domainerror.ErrCodeNoActiveEdit,
			"no record is being edited",
			domainerror.ErrNoActiveEdit,
		)
	}
	s.draftDescription = description
	s.descriptionTouched = true
	return nil
}

// SelectCategory applies a category selector value: the empty string selects
// "no category", SentinelNewCategory opens the creation dialog without
// changing the draft, and anything else must be a real category UUID.
func (s *Session) SelectCategory(value string) error {
	if s.state != StateEditing {
		return domainerror.NewSessionError(
			domainerror.ErrCodeNoActiveEdit,
			"no record is being edited",
			domainerror.ErrNoActiveEdit,
		)
	}

	switch value {
	case SentinelNewCategory:
		s.dialog.open()
		return nil
	case "":
		s.draftCategoryID = nil
		s.categoryTouched = true
		return nil
	default:
		id, err := uuid.Parse(value)
		if err != nil {
			return domainerror.NewSessionError(
				domainerror.ErrCodeInvalidCategorySelector,
				"category selector value is not a valid category ID",
				domainerror.ErrInvalidCategorySelector,
			)
		}
		s.draftCategoryID = &id
		s.categoryTouched = true
		return nil
	}
}

// Save dispatches a partial update carrying only the fields touched during
// this session, then transitions to Viewing on success. On failure the
// session stays in Editing so the user does not lose the draft; there is no
// automatic retry.
func (s *Session) Save(ctx context.Context) (*SaveResult, error) {
	if s.state != StateEditing {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeNoActiveEdit,
			"no record is being edited",
			domainerror.ErrNoActiveEdit,
		)
	}
	if s.pending {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeSaveInFlight,
			"a save request is already in flight",
			domainerror.ErrSaveInFlight,
		)
	}

	req := s.buildUpdate()
	id := s.editingID

	if req.IsEmpty() {
		// Nothing changed; treat as a successful no-op save.
		s.reset()
		return &SaveResult{Applied: true}, nil
	}

	generation := s.generation
	s.pending = true
	txn, err := s.store.UpdateTransaction(ctx, id, req)
	s.pending = false

	if generation != s.generation {
		// The session was cancelled while the request was in flight; the
		// result must not revive the dismissed edit.
		slog.Info("Dropping stale save response", "transaction_id", id)
		return &SaveResult{Applied: false}, nil
	}

	if err != nil {
		return nil, err
	}

	s.reset()
	return &SaveResult{Applied: true, Transaction: txn}, nil
}

// buildUpdate computes the changed-field set from the touched flags and the
// values seeded at edit begin.
func (s *Session) buildUpdate() adapter.UpdateTransactionRequest {
	req := adapter.UpdateTransactionRequest{Category: valueobject.CategoryUnchanged()}

	if s.descriptionTouched && s.draftDescription != s.originalDescription {
		description := s.draftDescription
		req.Description = &description
	}

	if s.categoryTouched && !sameCategory(s.originalCategoryID, s.draftCategoryID) {
		if s.draftCategoryID == nil {
			req.Category = valueobject.CategoryNone()
		} else {
			req.Category = valueobject.CategoryID(*s.draftCategoryID)
		}
	}

	return req
}

// reset returns the session to Viewing and clears all drafts.
func (s *Session) reset() {
	s.state = StateViewing
	s.editingID = ""
	s.originalDescription = ""
	s.originalCategoryID = nil
	s.draftDescription = ""
	s.draftCategoryID = nil
	s.descriptionTouched = false
	s.categoryTouched = false
	s.dialog.discard()
}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
