package repositories

import (
	"context"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// taskRepository implements TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID gets a task by ID with staff preloaded
func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Preload("Staff").First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// List lists tasks ordered by priority desc then due date asc
func (r *taskRepository) List(ctx context.Context, filter TaskFilter, offset, limit int) ([]*models.Task, int64, error) {
	var tasks []*models.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.StaffID != 0 {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("FIELD(priority, 'high', 'medium', 'low'), due_date ASC").
		Offset(offset).Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListPending returns a staff member's pending and in-progress tasks
func (r *taskRepository) ListPending(ctx context.Context, staffID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND status IN ?", staffID,
			[]string{models.TaskStatusPending, models.TaskStatusInProgress}).
		Order("FIELD(priority, 'high', 'medium', 'low'), due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListOverdue returns tasks past their due date that were never completed.
// Cancelled tasks are included; see the overdue test for why that stays.
func (r *taskRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("due_date < ? AND status <> ?", now, models.TaskStatusCompleted).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}
