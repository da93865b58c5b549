package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// TaskServiceImpl implements domain.TaskService
type TaskServiceImpl struct {
	taskRepo domain.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo domain.TaskRepository) domain.TaskService {
	return &TaskServiceImpl{taskRepo: taskRepo}
}

// ParseCompletionFlag maps the accepted completion tokens onto a boolean.
// Anything outside the two sets is a validation error rather than a silent
// false.
func ParseCompletionFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, &domain.ValidationError{
			Field:  "is_completed",
			Reason: fmt.Sprintf("unrecognized value %q", value),
		}
	}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	day, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{
			Field:  "date",
			Reason: "invalid or missing date (expected YYYY-MM-DD)",
		}
	}
	return day, nil
}

// ListForDay implements domain.TaskService
func (s *TaskServiceImpl) ListForDay(ctx context.Context, userID uint, date string) ([]domain.Task, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create implements domain.TaskService
func (s *TaskServiceImpl) Create(ctx context.Context, userID uint, title, date string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Date:        day,
		IsCompleted: false,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update implements domain.TaskService. Nil patch fields are left alone; a
// task owned by someone else is not-found.
func (s *TaskServiceImpl) Update(ctx context.Context, userID, taskID uint, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.taskRepo.FindByIDForUser(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		task.Title = title
	}
	if patch.IsCompleted != nil {
		task.IsCompleted = *patch.IsCompleted
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
