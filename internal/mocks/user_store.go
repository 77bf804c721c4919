package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Without function overrides it behaves like a small in-memory store keyed by username.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, user *domain.User) error
	GetByIDFn          func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn    func(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameFn func(ctx context.Context, username string) (bool, error)

	// Data for default implementation
	mu     sync.Mutex
	Users  map[string]*domain.User
	nextID int64

	// Errors returned by the default implementation when set
	CreateError        error
	GetByUsernameError error
	ExistsError        error

	// Call counters
	GetByUsernameCalls int
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// AddUser seeds the store directly, assigning an ID if the user has none.
func (m *MockUserStore) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	}
	m.Users[user.Username] = user
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users)
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	m.nextID++
	user.ID = m.nextID
	m.Users[user.Username] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Default implementation searches through Users map
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	m.GetByUsernameCalls++
	m.mu.Unlock()

	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetByUsernameError != nil {
		return nil, m.GetByUsernameError
	}

	user, exists := m.Users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// ExistsByUsername implements the UserStore interface
func (m *MockUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFn != nil {
		return m.ExistsByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ExistsError != nil {
		return false, m.ExistsError
	}

	_, exists := m.Users[username]
	return exists, nil
}
