package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestTokenErrorsWrapInvalidToken(t *testing.T) {
	t.Parallel()

	for _, err := range []error{auth.ErrMalformedToken, auth.ErrBadSignature, auth.ErrExpiredToken} {
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	}
	assert.NotErrorIs(t, auth.ErrInvalidCredentials, auth.ErrInvalidToken)
	assert.NotErrorIs(t, auth.ErrAuthenticationRequired, auth.ErrInvalidToken)
	assert.ErrorIs(t, auth.ErrUnknownSubject, auth.ErrAuthenticationRequired)
}

func TestRejectionReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: auth.ErrMalformedToken, want: "malformed"},
		{err: auth.ErrBadSignature, want: "bad_signature"},
		{err: fmt.Errorf("verify: %w", auth.ErrExpiredToken), want: "expired"},
		{err: auth.ErrUnknownSubject, want: "unknown_subject"},
		{err: auth.ErrAuthenticationRequired, want: "missing"},
		{err: auth.ErrInvalidToken, want: "invalid"},
		{err: errors.New("boom"), want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, auth.RejectionReason(tt.err))
		})
	}
}
