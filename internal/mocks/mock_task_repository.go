package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MockTaskRepository implements domain.TaskRepository interface for testing.
// Defaults keep tasks in memory and mirror the store's list ordering:
// open tasks first, then by creation time.
type MockTaskRepository struct {
	CreateFunc            func(ctx context.Context, task *domain.Task) error
	FindByIDForUserFunc   func(ctx context.Context, userID, taskID uint) (*domain.Task, error)
	ListByUserAndDateFunc func(ctx context.Context, userID uint, date time.Time) ([]domain.Task, error)
	UpdateFunc            func(ctx context.Context, task *domain.Task) error

	mu     sync.Mutex
	nextID uint
	tasks  map[uint]domain.Task
}

// NewMockTaskRepository creates a new MockTaskRepository with default behaviors
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{tasks: make(map[uint]domain.Task)}
}

// Create stores a task and assigns it an id
func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	task.ID = m.nextID
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	m.tasks[task.ID] = *task
	return nil
}

// FindByIDForUser returns the task only when it belongs to the user
func (m *MockTaskRepository) FindByIDForUser(ctx context.Context, userID, taskID uint) (*domain.Task, error) {
	if m.FindByIDForUserFunc != nil {
		return m.FindByIDForUserFunc(ctx, userID, taskID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

// ListByUserAndDate returns the user's tasks for the day, open tasks first
func (m *MockTaskRepository) ListByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]domain.Task, error) {
	if m.ListByUserAndDateFunc != nil {
		return m.ListByUserAndDateFunc(ctx, userID, date)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, task := range m.tasks {
		if task.UserID == userID && task.Date.Equal(date) {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsCompleted != out[j].IsCompleted {
			return !out[i].IsCompleted
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update overwrites the stored task
func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	m.tasks[task.ID] = *task
	return nil
}

// Compile-time interface compliance verification
var _ domain.TaskRepository = (*MockTaskRepository)(nil)
