package editsession

import (
	"context"
	"regexp"
	"strings"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// categoryDialog holds the nested category-creation dialog's state. It is
// owned by the session so a dialog can only exist inside an active edit.
type categoryDialog struct {
	isOpen     bool
	draftName  string
	draftColor string
	pending    bool
}

func (d *categoryDialog) open() {
	d.isOpen = true
	d.draftName = ""
	d.draftColor = entity.DefaultCategoryColor
}

func (d *categoryDialog) discard() {
	d.isOpen = false
	d.draftName = ""
	d.draftColor = ""
	d.pending = false
}

// DialogOpen reports whether the category-creation dialog is open.
func (s *Session) DialogOpen() bool {
	return s.dialog.isOpen
}

// DialogName returns the dialog's draft category name.
func (s *Session) DialogName() string {
	return s.dialog.draftName
}

// DialogColor returns the dialog's draft color.
func (s *Session) DialogColor() string {
	return s.dialog.draftColor
}

// SetDialogName updates the dialog's draft name.
func (s *Session) SetDialogName(name string) error {
	if !s.dialog.isOpen {
		return dialogNotOpen()
	}
	s.dialog.draftName = name
	return nil
}

// SetDialogColor updates the dialog's draft color.
func (s *Session) SetDialogColor(color string) error {
	if !s.dialog.isOpen {
		return dialogNotOpen()
	}
	s.dialog.draftColor = color
	return nil
}

// CanConfirmDialog reports whether the dialog's confirm action is enabled:
// the name must be non-blank. Renderers disable the confirm control when
// this is false instead of round-tripping an invalid request.
func (s *Session) CanConfirmDialog() bool {
	return s.dialog.isOpen && strings.TrimSpace(s.dialog.draftName) != "" && !s.dialog.pending
}

// ConfirmDialog creates the category. On success the dialog closes, its
// drafts are cleared, and the enclosing edit's draft category becomes the
// new category's ID so the user never has to reselect it. On failure the
// dialog stays open with its drafts intact and the enclosing edit is
// untouched.
func (s *Session) ConfirmDialog(ctx context.Context) (*entity.Category, error) {
	if !s.dialog.isOpen {
		return nil, dialogNotOpen()
	}

	name := strings.TrimSpace(s.dialog.draftName)
	if name == "" {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}

	color := s.dialog.draftColor
	if color != "" && !hexColorRegex.MatchString(color) {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	s.dialog.pending = true
	category, err := s.store.CreateCategory(ctx, adapter.CreateCategoryRequest{
		Name:     name,
		ColorHex: color,
	})
	s.dialog.pending = false
	if err != nil {
		return nil, err
	}

	// Adopt the new category into the enclosing edit without leaving edit
	// mode: Editing(id) -> Editing(id).
	if s.state == StateEditing {
		id := category.ID
		s.draftCategoryID = &id
		s.categoryTouched = true
	}

	s.dialog.discard()
	return category, nil
}

// CancelDialog closes the dialog and discards its drafts, leaving the
// enclosing edit's category selection unchanged.
func (s *Session) CancelDialog() error {
	if !s.dialog.isOpen {
		return dialogNotOpen()
	}
	s.dialog.discard()
	return nil
}

func dialogNotOpen() error {
	return domainerror.NewSessionError(
		domainerror.ErrCodeDialogNotOpen,
		"category dialog is not open",
		domainerror.ErrDialogNotOpen,
	)
}
