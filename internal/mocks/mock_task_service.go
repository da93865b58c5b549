package mocks

import (
	"context"
	"time"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MockTaskService implements domain.TaskService interface for testing
type MockTaskService struct {
	ListForDayFunc func(ctx context.Context, userID uint, date string) ([]domain.Task, error)
	CreateFunc     func(ctx context.Context, userID uint, title, date string) (*domain.Task, error)
	UpdateFunc     func(ctx context.Context, userID, taskID uint, patch domain.TaskPatch) (*domain.Task, error)
}

// NewMockTaskService creates a new MockTaskService with default behaviors
func NewMockTaskService() *MockTaskService {
	return &MockTaskService{}
}

// ListForDay lists the user's tasks for a calendar day
func (m *MockTaskService) ListForDay(ctx context.Context, userID uint, date string) ([]domain.Task, error) {
	if m.ListForDayFunc != nil {
		return m.ListForDayFunc(ctx, userID, date)
	}
	// Default behavior: empty day
	return nil, nil
}

// Create creates a task for the user
func (m *MockTaskService) Create(ctx context.Context, userID uint, title, date string) (*domain.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, title, date)
	}
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, &domain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return &domain.Task{
		ID:        1,
		UserID:    userID,
		Title:     title,
		Date:      day,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// Update applies a partial update to the user's task
func (m *MockTaskService) Update(ctx context.Context, userID, taskID uint, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, taskID, patch)
	}
	task := &domain.Task{ID: taskID, UserID: userID, Title: "mock task"}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.IsCompleted != nil {
		task.IsCompleted = *patch.IsCompleted
	}
	return task, nil
}

// Compile-time interface compliance verification
var _ domain.TaskService = (*MockTaskService)(nil)
