package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTaskStatus is returned when a task status is not one of the known values.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single invalid field. It wraps one of the
// sentinel errors above so callers can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validationSentinels are the errors that describe bad input.
var validationSentinels = []error{
	ErrValidation,
	ErrInvalidID,
	ErrInvalidTaskStatus,
	ErrEmptyTaskUserID,
	ErrEmptyTaskTitle,
	ErrTaskTitleTooLong,
	ErrEmptyUsername,
	ErrUsernameTooLong,
	ErrEmptyHashedPassword,
	ErrPasswordTooLong,
}

// IsValidationError reports whether err stems from invalid input rather than
// a failure of the system.
func IsValidationError(err error) bool {
	_, ok := ValidationMessage(err)
	return ok
}

// ValidationMessage returns a client-safe description of a validation error.
// Only the domain's own messages are returned, never the text of wrapping errors.
func ValidationMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error(), true
	}

	for _, target := range validationSentinels {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}
