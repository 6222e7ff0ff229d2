package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidationError reports whether err is, or wraps, a single ValidationError or a ValidationErrors set.
func IsValidationError(err error) bool {
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		return true
	}
	return IsValidationErrors(err)
}

var (
	ErrInvalidType        = NewValidationError("Type must be 'income' or 'expense'")
	ErrInvalidAmount      = NewValidationError("Amount must be greater than zero")
	ErrAmountTooLarge     = NewValidationError("Amount must be less than 1000000000000")
	ErrMissingDescription = NewValidationError("Description is required")
	ErrDescriptionLength  = NewValidationError("Description must be at most 200 characters")
	ErrMissingCategory    = NewValidationError("Category is required for expenses")
	ErrCategoryLength     = NewValidationError("Category must be at most 100 characters")
	ErrInvalidDate        = NewValidationError("Date must be RFC 3339 or YYYY-MM-DD")
)

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

func (ve *ValidationErrors) Unwrap() []error {
	return ve.Errors
}

// Messages returns the message of every collected error, in insertion order.
func (ve *ValidationErrors) Messages() []string {
	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = err.Error()
	}
	return messages
}

// ErrOrNil returns ve when at least one error was collected.
func (ve *ValidationErrors) ErrOrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	ok := errors.As(err, &validationErrors)
	return ok
}
