package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing.
type MockTokenCodec struct {
	// Function fields for custom behaviors
	IssueFn  func(ctx context.Context, subject string, now time.Time) (auth.IssuedToken, error)
	VerifyFn func(ctx context.Context, token string, now time.Time) (*auth.Claims, error)

	// Fixed fields for simple cases
	Token       string        // Token returned by the default Issue
	Lifetime    time.Duration // Lifetime used by the default Issue
	IssueError  error
	VerifyError error
	Claims      *auth.Claims // Claims returned by the default Verify
}

// Ensure MockTokenCodec implements auth.TokenCodec
var _ auth.TokenCodec = (*MockTokenCodec)(nil)

// NewMockTokenCodec creates a mock codec with default values.
func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{
		Token:    "mock-token",
		Lifetime: time.Hour,
	}
}

// Issue implements the TokenCodec interface
func (m *MockTokenCodec) Issue(
	ctx context.Context,
	subject string,
	now time.Time,
) (auth.IssuedToken, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, subject, now)
	}
	if m.IssueError != nil {
		return auth.IssuedToken{}, m.IssueError
	}
	return auth.IssuedToken{Token: m.Token, ExpiresAt: now.Add(m.Lifetime)}, nil
}

// Verify implements the TokenCodec interface
func (m *MockTokenCodec) Verify(ctx context.Context, token string, now time.Time) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token, now)
	}
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	return m.Claims, nil
}
