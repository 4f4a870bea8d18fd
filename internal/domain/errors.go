package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the update/delete target vanished, e.g. another
	// client deleted it first.
	ErrNotFound = errors.New("booking not found")

	// ErrConflict means a commit would create overlapping intervals within
	// one (studio, date) partition.
	ErrConflict = errors.New("booking conflicts with an existing booking")

	// ErrNothingToExport means the requested date range matched no bookings.
	ErrNothingToExport = errors.New("no bookings in the selected date range")

	// ErrUnknownStudio means the requested studio id is not in the catalog.
	ErrUnknownStudio = errors.New("unknown studio")
)

// ValidationError reports a rejected submission before any repository call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field}
}

func InvalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
