package auth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
)

// MinSecretLength is the shortest signing secret NewHMACTokenCodec accepts.
const MinSecretLength = 32

// hmacTokenCodec is an implementation of TokenCodec using HMAC-SHA256 signed JWTs.
// It is immutable after construction.
type hmacTokenCodec struct {
	signingKey    []byte
	tokenLifetime time.Duration
	clockSkew     time.Duration // Allowed time difference for expiry checks
}

// Ensure hmacTokenCodec implements TokenCodec interface
var _ TokenCodec = (*hmacTokenCodec)(nil)

// NewHMACTokenCodec creates a new TokenCodec using HMAC-SHA256 signing.
func NewHMACTokenCodec(cfg config.AuthConfig) (TokenCodec, error) {
	// Validate that the secret meets minimum length requirements
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}

	if cfg.TokenLifetime() <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}

	if cfg.ClockSkew() < 0 {
		return nil, errors.New("clock skew must not be negative")
	}

	return &hmacTokenCodec{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: cfg.TokenLifetime(),
		clockSkew:     cfg.ClockSkew(),
	}, nil
}

// Issue creates a signed JWT for subject.
func (c *hmacTokenCodec) Issue(
	ctx context.Context,
	subject string,
	now time.Time,
) (IssuedToken, error) {
	log := logger.FromContext(ctx)

	if subject == "" {
		return IssuedToken{}, errors.New("token subject cannot be empty")
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenLifetime)),
		ID:        uuid.NewString(),
	}

	// Create the token with the claims and sign it with HMAC-SHA256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return IssuedToken{}, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return IssuedToken{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify validates a JWT and returns its claims.
//
// The signature is checked before any claim is decoded, so nothing in an
// unauthenticated token is ever trusted.
func (c *hmacTokenCodec) Verify(ctx context.Context, token string, now time.Time) (*Claims, error) {
	log := logger.FromContext(ctx)

	// Structure: three non-empty base64url segments
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		log.Debug("token rejected: wrong segment count", "segments", len(parts))
		return nil, ErrMalformedToken
	}
	for i, part := range parts {
		if part == "" {
			log.Debug("token rejected: empty segment", "segment", i)
			return nil, ErrMalformedToken
		}
		if _, err := base64.RawURLEncoding.DecodeString(part); err != nil {
			log.Debug("token rejected: segment is not base64url", "segment", i)
			return nil, ErrMalformedToken
		}
	}

	// Signature
	if !c.signatureMatches(parts[0]+"."+parts[1], parts[2]) {
		log.Debug("token rejected: signature mismatch")
		return nil, ErrBadSignature
	}

	// Claims
	var registered jwt.RegisteredClaims
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &registered)
	if err != nil {
		log.Debug("token rejected: undecodable header or claims", "error", err)
		return nil, ErrMalformedToken
	}
	if parsed.Method == nil || parsed.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		log.Debug("token rejected: unexpected signing method", "alg", parsed.Header["alg"])
		return nil, ErrMalformedToken
	}
	if registered.Subject == "" || registered.ExpiresAt == nil {
		log.Debug("token rejected: missing required claims")
		return nil, ErrMalformedToken
	}

	// Expiry
	if now.After(registered.ExpiresAt.Add(c.clockSkew)) {
		log.Debug("token rejected: expired",
			"token_id", registered.ID,
			"expired_at", registered.ExpiresAt.Time)
		return nil, ErrExpiredToken
	}

	claims := &Claims{
		Subject:   registered.Subject,
		ExpiresAt: registered.ExpiresAt.Time,
		ID:        registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}

	return claims, nil
}

// signatureMatches recomputes the HMAC over signingInput and compares its
// encoded form to presented in constant time.
func (c *hmacTokenCodec) signatureMatches(signingInput, presented string) bool {
	sig, err := jwt.SigningMethodHS256.Sign(signingInput, c.signingKey)
	if err != nil {
		return false
	}
	expected := base64.RawURLEncoding.EncodeToString(sig)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}
