package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// TaskInput carries the client-editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	// Status may be empty: new tasks start PENDING, updates keep the current status.
	Status domain.TaskStatus
}

// TaskService provides task operations scoped to the acting user.
// The user ID always comes from the authenticated request, never from the payload.
type TaskService interface {
	// CreateTask creates a task owned by userID.
	CreateTask(ctx context.Context, userID int64, input TaskInput) (*domain.Task, error)

	// GetTask retrieves one of the user's tasks.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// ListTasks returns the user's tasks, optionally restricted to one status.
	ListTasks(ctx context.Context, userID int64, status *domain.TaskStatus) ([]*domain.Task, error)

	// UpdateTask replaces the editable fields of one of the user's tasks.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	UpdateTask(ctx context.Context, userID, taskID int64, input TaskInput) (*domain.Task, error)

	// DeleteTask removes one of the user's tasks.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	clock     func() time.Time
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// A nil clock defaults to time.Now.
func NewTaskService(
	taskStore store.TaskStore,
	clock func() time.Time,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("taskStore cannot be nil")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		clock:     clock,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID int64,
	input TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, input.Title, input.Description, input.Status, s.clock())
	if err != nil {
		log.Debug("rejected invalid task", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, NewServiceError("task", "create", err)
	}

	log.Info("task created", slog.Int64("user_id", userID), slog.Int64("task_id", task.ID))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByIDForUser(ctx, taskID, userID)
	if err != nil {
		return nil, s.translate(ctx, "get", userID, taskID, err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	userID int64,
	status *domain.TaskStatus,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be PENDING or COMPLETED", domain.ErrInvalidTaskStatus)
	}

	tasks, err := s.taskStore.ListByUser(ctx, userID, status)
	if err != nil {
		log.Error("failed to list tasks", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, NewServiceError("task", "list", err)
	}

	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID int64,
	input TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Get the existing task first, scoped to the owner
	task, err := s.taskStore.GetByIDForUser(ctx, taskID, userID)
	if err != nil {
		return nil, s.translate(ctx, "update", userID, taskID, err)
	}

	if err := task.Apply(input.Title, input.Description, input.Status, s.clock()); err != nil {
		log.Debug("rejected invalid task update", slog.Int64("task_id", taskID), slog.Any("error", err))
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, s.translate(ctx, "update", userID, taskID, err)
	}

	log.Info("task updated", slog.Int64("user_id", userID), slog.Int64("task_id", taskID))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if err := s.taskStore.DeleteForUser(ctx, taskID, userID); err != nil {
		return s.translate(ctx, "delete", userID, taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).
		Info("task deleted", slog.Int64("user_id", userID), slog.Int64("task_id", taskID))
	return nil
}

// translate maps store errors onto service errors, logging unexpected ones.
func (s *taskServiceImpl) translate(ctx context.Context, op string, userID, taskID int64, err error) error {
	if store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("task store operation failed",
		slog.String("operation", op),
		slog.Int64("user_id", userID),
		slog.Int64("task_id", taskID),
		slog.Any("error", err))
	return NewServiceError("task", op, err)
}
