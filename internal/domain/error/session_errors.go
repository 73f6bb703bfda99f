// Package error defines domain-specific errors for the finpilot client.
package error

import "errors"

// Edit session errors.
var (
	// ErrEditInProgress is returned when an edit is begun while another record is already in edit mode.
	ErrEditInProgress = errors.New("another record is already being edited")

	// ErrNoActiveEdit is returned when a session operation requires an active edit and there is none.
	ErrNoActiveEdit = errors.New("no record is being edited")

	// ErrSaveInFlight is returned when a save is requested while a previous save is still pending.
	ErrSaveInFlight = errors.New("a save request is already in flight")

	// ErrCategoryNameRequired is returned when the category dialog is confirmed with a blank name.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrDialogNotOpen is returned when the category dialog is confirmed or cancelled while closed.
	ErrDialogNotOpen = errors.New("category dialog is not open")

	// ErrInvalidColorFormat is returned when a category color is not a valid hex string.
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrInvalidCategorySelector is returned when a selector value is neither
	// empty, the create-new sentinel, nor a valid category ID.
	ErrInvalidCategorySelector = errors.New("invalid category selector value")
)

// SessionErrorCode defines error codes for edit session errors.
// Format: SESSION-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	// State errors (01XXXX)
	ErrCodeEditInProgress SessionErrorCode = "SESSION-010001"
	ErrCodeNoActiveEdit   SessionErrorCode = "SESSION-010002"
	ErrCodeSaveInFlight   SessionErrorCode = "SESSION-010003"
	ErrCodeDialogNotOpen  SessionErrorCode = "SESSION-010004"

	// Validation errors (02XXXX)
	ErrCodeCategoryNameRequired    SessionErrorCode = "SESSION-020001"
	ErrCodeInvalidColorFormat      SessionErrorCode = "SESSION-020002"
	ErrCodeInvalidCategorySelector SessionErrorCode = "SESSION-020003"
)

// SessionError represents an edit session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
