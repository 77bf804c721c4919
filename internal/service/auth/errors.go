package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidCredentials is returned by login for an unknown username and for
	// a wrong password alike. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken indicates registration was attempted with a username
	// that already belongs to another account.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrAuthenticationRequired indicates a protected request carried no
	// usable bearer token, or its subject no longer exists.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrUnknownSubject indicates a validly signed token names a user that no
	// longer exists.
	ErrUnknownSubject = fmt.Errorf("%w: unknown subject", ErrAuthenticationRequired)

	// ErrInvalidToken is the parent of every token verification failure.
	ErrInvalidToken = errors.New("invalid authentication token")

	// Token-specific errors, all matching ErrInvalidToken via errors.Is

	// ErrMalformedToken indicates the token is not a well-formed HS256 JWT
	// with the claims this service issues.
	ErrMalformedToken = fmt.Errorf("%w: malformed", ErrInvalidToken)

	// ErrBadSignature indicates the signature does not match the header and claims.
	ErrBadSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// RejectionReason returns a short, stable label for a token verification
// failure, suitable as a metric label or log attribute.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrUnknownSubject):
		return "unknown_subject"
	case errors.Is(err, ErrAuthenticationRequired):
		return "missing"
	case errors.Is(err, ErrInvalidToken):
		return "invalid"
	default:
		return "error"
	}
}
