package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into salted one-way hashes and
// checks candidates against them.
type PasswordHasher interface {
	// Hash returns a salted hash of plaintext. Two calls with the same input
	// return different hashes.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash is
	// reported as a mismatch.
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt.
// It holds no mutable state and is safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// Ensure BcryptHasher implements PasswordHasher interface
var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a new BcryptHasher. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the bcrypt work factor used by Hash.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify implements the PasswordHasher interface.
// bcrypt performs the comparison in constant time.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
