package apperrors

import (
	"errors"
	"fmt"
)

// ErrorKind classifies application errors so callers can branch on the
// kind of failure without depending on transport status codes.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindRateUnavailable
	KindTransientProvider
	KindMalformedProvider
	KindPersistence
	KindInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateUnavailable:
		return "rate_unavailable"
	case KindTransientProvider:
		return "transient_provider"
	case KindMalformedProvider:
		return "malformed_provider"
	case KindPersistence:
		return "persistence"
	case KindInput:
		return "input"
	default:
		return "internal"
	}
}

// AppError is an error tagged with an ErrorKind.
type AppError struct {
	Kind    ErrorKind
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

// Is reports a match against any AppError of the same kind, so the
// sentinels below work with errors.Is regardless of message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks, one per kind.
var (
	ErrInternal          = &AppError{Kind: KindInternal, Message: "internal error"}
	ErrValidation        = &AppError{Kind: KindValidation, Message: "validation error"}
	ErrNotFound          = &AppError{Kind: KindNotFound, Message: "resource not found"}
	ErrRateUnavailable   = &AppError{Kind: KindRateUnavailable, Message: "exchange rate unavailable"}
	ErrTransientProvider = &AppError{Kind: KindTransientProvider, Message: "rate provider temporarily unavailable"}
	ErrMalformedProvider = &AppError{Kind: KindMalformedProvider, Message: "rate provider returned malformed data"}
	ErrPersistence       = &AppError{Kind: KindPersistence, Message: "persistence failure"}
	ErrInput             = &AppError{Kind: KindInput, Message: "invalid input"}
)

// New creates an AppError of the given kind.
func New(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError of the given kind around a cause.
func Wrap(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *AppError {
	return New(KindValidation, message)
}

// NewNotFoundError creates a not-found error with the given message.
func NewNotFoundError(message string) *AppError {
	return New(KindNotFound, message)
}

// NewInputError creates an input error with an optional cause.
func NewInputError(message string, err error) *AppError {
	return Wrap(KindInput, message, err)
}

// NewPersistenceError creates a persistence error around a storage failure.
func NewPersistenceError(message string, err error) *AppError {
	return Wrap(KindPersistence, message, err)
}

// KindOf returns the kind of the first AppError in err's chain,
// or KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsTransient reports whether err is worth retrying against the provider.
func IsTransient(err error) bool {
	return KindOf(err) == KindTransientProvider
}

// UserMessage returns the message of the first AppError in err's chain,
// falling back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
