package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource is in a state that rejects the action.
var ErrConflict = errors.New("conflict")

// ErrInternal is a generic error for unexpected internal failures.
var ErrInternal = errors.New("internal error")

// ErrConfiguration indicates a deployment/configuration-level problem
// (unknown account type, missing financial settings). These must fail the
// operation outright; defaulting would silently corrupt a balance.
var ErrConfiguration = errors.New("configuration error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// InsufficientBalanceError is returned when an expense would push an account
// balance negative while balance validation is enabled. It carries enough
// detail for the caller to render an informative message.
type InsufficientBalanceError struct {
	AccountID string
	Requested int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: requested %d FCFA, available %d FCFA (shortfall %d)",
		e.AccountID, e.Requested, e.Available, e.Shortfall())
}

// Shortfall is the amount missing to cover the requested expense.
func (e *InsufficientBalanceError) Shortfall() int64 {
	return e.Requested - e.Available
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrValidation
}
