package store

import (
	"context"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// It is the identity store consulted by registration, login and the
// per-request authorization filter.
type UserStore interface {
	// Create saves a new user to the store and assigns its ID.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
