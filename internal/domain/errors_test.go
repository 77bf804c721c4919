package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "validation error type", err: NewValidationError("status", "is invalid", ErrInvalidTaskStatus), want: true},
		{name: "wrapped title error", err: fmt.Errorf("create: %w", ErrEmptyTaskTitle), want: true},
		{name: "username too long", err: ErrUsernameTooLong, want: true},
		{name: "generic validation", err: ErrValidation, want: true},
		{name: "unauthorized", err: ErrUnauthorized, want: false},
		{name: "unrelated", err: errors.New("connection reset"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	msg, ok := ValidationMessage(fmt.Errorf("store said secret things: %w", ErrEmptyTaskTitle))
	assert.True(t, ok)
	assert.Equal(t, "task title cannot be empty", msg)

	msg, ok = ValidationMessage(NewValidationError("status", "must be PENDING or COMPLETED", ErrInvalidTaskStatus))
	assert.True(t, ok)
	assert.Equal(t, "status must be PENDING or COMPLETED", msg)

	_, ok = ValidationMessage(errors.New("boom"))
	assert.False(t, ok)
}
