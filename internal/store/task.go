package store

import (
	"context"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every read and write is scoped to the owning user; a task that belongs to
// someone else is reported as ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task and assigns its ID.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByIDForUser retrieves a task owned by userID.
	// Returns ErrTaskNotFound if it does not exist or is owned by another user.
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Task, error)

	// ListByUser returns the user's tasks ordered by creation time, newest first.
	// A non-nil status restricts the result to tasks in that status.
	// Returns an empty slice if no tasks match.
	ListByUser(ctx context.Context, userID int64, status *domain.TaskStatus) ([]*domain.Task, error)

	// Update saves the mutable fields of an existing task.
	// Returns ErrTaskNotFound if it does not exist or is owned by another user.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForUser removes a task owned by userID.
	// Returns ErrTaskNotFound if it does not exist or is owned by another user.
	DeleteForUser(ctx context.Context, id, userID int64) error
}
