package mocks

import (
	"strings"

	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// hashPrefix marks values produced by MockPasswordHasher.Hash.
const hashPrefix = "mock-hash:"

// MockPasswordHasher implements auth.PasswordHasher for testing without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn   func(plaintext string) (string, error)
	VerifyFn func(plaintext, hash string) bool

	// HashError is returned by the default Hash when set
	HashError error
}

// Ensure MockPasswordHasher implements auth.PasswordHasher
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// NewMockPasswordHasher creates a hasher that prefixes plaintexts with a fixed marker.
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(plaintext)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return hashPrefix + plaintext, nil
}

// Verify implements the PasswordHasher interface
func (m *MockPasswordHasher) Verify(plaintext, hash string) bool {
	if m.VerifyFn != nil {
		return m.VerifyFn(plaintext, hash)
	}
	return strings.HasPrefix(hash, hashPrefix) && strings.TrimPrefix(hash, hashPrefix) == plaintext
}
