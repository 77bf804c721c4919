package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 50 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
)

// MaxUsernameLength is the longest username the users table accepts.
const MaxUsernameLength = 50

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not characters.
const MaxPasswordBytes = 72

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(plaintext string) error {
	if len(plaintext) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// User represents a registered user of the task tracker.
// The plaintext password never lives on this struct; only its hash does.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new, not yet persisted User. The ID is assigned by the store.
// Returns an error if validation fails.
func NewUser(username, hashedPassword string, createdAt time.Time) (*User, error) {
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      createdAt.UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// UserSummary is the non-sensitive view of a user returned to clients.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Summary returns the client-safe projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}
