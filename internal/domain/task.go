package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// TaskStatus represents the completion state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Common validation errors for Task
var (
	ErrEmptyTaskUserID  = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title must be at most 255 characters long")
)

// MaxTaskTitleLength matches the width of tasks.title.
const MaxTaskTitleLength = 255

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task for the given owner. An empty status defaults to PENDING.
// Returns an error if validation fails.
func NewTask(userID int64, title, description string, status TaskStatus, now time.Time) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	return nil
}

// Apply overwrites the mutable fields of the task and bumps UpdatedAt.
// An empty status keeps the current one.
func (t *Task) Apply(title, description string, status TaskStatus, now time.Time) error {
	if status == "" {
		status = t.Status
	}

	updated := *t
	updated.Title = title
	updated.Description = description
	updated.Status = status
	updated.UpdatedAt = now.UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*t = updated
	return nil
}

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
