// Package error defines domain-specific errors for the finpilot client.
package error

import "errors"

// Record store errors.
var (
	// ErrTransactionNotFound is returned when the store has no transaction with the given ID.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCategoryNotFound is returned when the store has no category with the given ID.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrRuleNotFound is returned when the store has no rule with the given ID.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrDuplicateTransaction is returned when a submitted transaction collides
	// with an existing one and the request did not carry the force flag.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrStoreUnavailable is returned when the record store cannot be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrUnauthorized is returned when the store rejects the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

// StoreErrorCode defines error codes for record store errors.
// Format: STORE-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeTransactionNotFound  StoreErrorCode = "STORE-010001"
	ErrCodeCategoryNotFound     StoreErrorCode = "STORE-010002"
	ErrCodeRuleNotFound         StoreErrorCode = "STORE-010003"
	ErrCodeDuplicateTransaction StoreErrorCode = "STORE-010004"
	ErrCodeInvalidRequest       StoreErrorCode = "STORE-010005"

	// Transport errors (02XXXX)
	ErrCodeStoreUnavailable StoreErrorCode = "STORE-020001"
	ErrCodeUnauthorized     StoreErrorCode = "STORE-020002"
	ErrCodeUnexpectedStatus StoreErrorCode = "STORE-020003"
)

// StoreError represents a record store error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given code and message.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// DuplicateRecord describes one side of a duplicate conflict as reported by
// the store's conflict response. Fields are wire strings so the conflict
// panel can render them without further lookups.
type DuplicateRecord struct {
	ID           string
	Date         string
	Amount       string
	Merchant     string
	CategoryName string
}

// DuplicateError carries the store's conflict response: the existing record
// the submission collided with and the candidate the user submitted. The
// caller may reissue the request with the force flag to bypass the check once.
type DuplicateError struct {
	Detail    string
	Existing  *DuplicateRecord
	Candidate *DuplicateRecord
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return ErrDuplicateTransaction.Error()
}

// Unwrap returns ErrDuplicateTransaction so callers can match with errors.Is.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateTransaction
}
