package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// TaskRepositoryImpl implements domain.TaskRepository using GORM. Every
// query carries the owning user id so one user can never observe another's
// tasks.
type TaskRepositoryImpl struct {
	db *gorm.DB
}

// DBTask represents the database model for Task
type DBTask struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index:idx_tasks_user_date;not null"`
	Title       string    `gorm:"size:255;not null"`
	Date        time.Time `gorm:"index:idx_tasks_user_date;type:date;not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBTask) TableName() string {
	return "tasks"
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// Create implements domain.TaskRepository
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	row := r.domainToDB(task)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	task.ID = row.ID
	task.CreatedAt = row.CreatedAt
	task.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByIDForUser implements domain.TaskRepository. A task owned by another
// user reports not-found, never a permission error.
func (r *TaskRepositoryImpl) FindByIDForUser(ctx context.Context, userID, taskID uint) (*domain.Task, error) {
	var row DBTask
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// ListByUserAndDate implements domain.TaskRepository. Open tasks come first,
// then by creation time, matching the calendar day view.
func (r *TaskRepositoryImpl) ListByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]domain.Task, error) {
	var rows []DBTask
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("is_completed ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, *r.dbToDomain(&rows[i]))
	}
	return tasks, nil
}

// Update implements domain.TaskRepository
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	result := r.db.WithContext(ctx).Model(&DBTask{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Updates(map[string]interface{}{
			"title":        task.Title,
			"is_completed": task.IsCompleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	var row DBTask
	if err := r.db.WithContext(ctx).Where("id = ?", task.ID).First(&row).Error; err != nil {
		return err
	}
	task.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *TaskRepositoryImpl) domainToDB(task *domain.Task) *DBTask {
	return &DBTask{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Date:        task.Date,
		IsCompleted: task.IsCompleted,
	}
}

func (r *TaskRepositoryImpl) dbToDomain(row *DBTask) *domain.Task {
	return &domain.Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Date:        row.Date,
		IsCompleted: row.IsCompleted,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
