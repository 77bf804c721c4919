package auth

import (
	"context"
	"time"
)

// TokenCodec issues and verifies signed, time-bound bearer tokens.
// Both operations take the current time explicitly so callers control the clock.
type TokenCodec interface {
	// Issue creates a signed token for subject that expires one token lifetime after now.
	Issue(ctx context.Context, subject string, now time.Time) (IssuedToken, error)

	// Verify checks the token's structure, signature and expiry as of now and
	// returns its claims. Failures wrap ErrInvalidToken: ErrMalformedToken,
	// ErrBadSignature or ErrExpiredToken.
	Verify(ctx context.Context, token string, now time.Time) (*Claims, error)
}

// IssuedToken is a freshly signed token and the instant it stops being valid.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// Claims represents the verified contents of a token.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// ID is the unique token identifier (jti).
	ID string
}
