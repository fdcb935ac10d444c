package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
)

// ErrorCode classifies structured domain failures. These are returned to
// callers as data, never panicked; handlers render them with an isError flag.
type ErrorCode string

const (
	ErrCodeInvalidInput     ErrorCode = "invalid_input"
	ErrCodeInvalidBankroll  ErrorCode = "invalid_bankroll"
	ErrCodeInvalidOdds      ErrorCode = "invalid_odds"
	ErrCodeTeamNotFound     ErrorCode = "team_not_found"
	ErrCodeInsufficientData ErrorCode = "insufficient_data"
	ErrCodeBetNotFound      ErrorCode = "bet_not_found"
)

// DomainError is a structured, returnable error carrying a taxonomy code
// and optional details (e.g. the searched term and nearest suggestions for
// team_not_found).
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a DomainError with no details
func NewDomainError(code ErrorCode, format string, args ...interface{}) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetail attaches a detail entry and returns the error for chaining
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// AsDomainError unwraps err to a *DomainError if it is one
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
