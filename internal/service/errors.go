package service

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the API and bot layers. All are recoverable at the
// caller boundary; the services never panic on bad input.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

func conflict(detail string) error {
	return fmt.Errorf("%s: %w", detail, ErrConflict)
}
