package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Without function overrides it keeps tasks in memory and enforces ownership
// the same way the real store does.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDForUserFn func(ctx context.Context, id, userID int64) (*domain.Task, error)
	ListByUserFn     func(ctx context.Context, userID int64, status *domain.TaskStatus) ([]*domain.Task, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteForUserFn  func(ctx context.Context, id, userID int64) error

	mu     sync.Mutex
	Tasks  map[int64]*domain.Task
	nextID int64
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[int64]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	stored := *task
	m.Tasks[task.ID] = &stored
	return nil
}

// GetByIDForUser implements the TaskStore interface
func (m *MockTaskStore) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Task, error) {
	if m.GetByIDForUserFn != nil {
		return m.GetByIDForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	found := *task
	return &found, nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID int64,
	status *domain.TaskStatus,
) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID != userID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		found := *task
		tasks = append(tasks, &found)
	}

	// Newest first, ties broken by ID
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}

	stored := *task
	m.Tasks[task.ID] = &stored
	return nil
}

// DeleteForUser implements the TaskStore interface
func (m *MockTaskStore) DeleteForUser(ctx context.Context, id, userID int64) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Tasks[id]
	if !ok || existing.UserID != userID {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}
