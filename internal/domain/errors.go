package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these are business logic errors that should be translated
// to appropriate HTTP status codes by the handler layer

var (
	// Error categories
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage unavailable")

	// Problem errors
	ErrProblemNotFound = fmt.Errorf("problem %w", ErrNotFound)
	ErrProblemExists   = fmt.Errorf("%w: problem with this id already exists", ErrConflict)

	// Resource and note errors
	ErrResourceNotFound = fmt.Errorf("resource %w", ErrNotFound)
	ErrNoteNotFound     = fmt.Errorf("note %w", ErrNotFound)

	// Catalog errors
	ErrCatalogNotFound  = errors.New("lesson catalog not found")
	ErrCatalogMalformed = fmt.Errorf("%w: lesson catalog is malformed", ErrValidation)
	ErrNoExercise       = fmt.Errorf("%w: lesson has no exercise", ErrValidation)
)

// DomainError wraps an error with additional context
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with the given error and message
func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

// StorageError marks err as a transient storage failure. The cause stays reachable
// through errors.Is / errors.As.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// IsRetryable reports whether the operation that returned err may be retried
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorage)
}
