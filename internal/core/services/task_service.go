package services

import (
	"context"
	"errors"
	"log"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"
	"clinicare-portal/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Task service errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyClosed = errors.New("task is already completed or cancelled")
)

// TaskService handles staff task management
type TaskService struct {
	taskRepo  repositories.TaskRepository
	staffRepo repositories.StaffRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository, staffRepo repositories.StaffRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		staffRepo: staffRepo,
	}
}

// CreateTaskInput represents create task input
type CreateTaskInput struct {
	StaffID     uint       `json:"staff_id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedBy  *uint      `json:"assigned_by"`
}

// ListTasksInput represents list tasks input
type ListTasksInput struct {
	Page     int
	Limit    int
	StaffID  uint
	Status   string
	Priority string
}

// Create assigns a new task to a staff member
func (s *TaskService) Create(ctx context.Context, input *CreateTaskInput) (*models.Task, error) {
	if _, err := s.staffRepo.GetByID(ctx, input.StaffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		StaffID:     input.StaffID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		AssignedBy:  input.AssignedBy,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Printf("✅ Task created: %q for staff %d (%s)", task.Title, task.StaffID, task.Priority)
	return task, nil
}

// GetByID gets a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// List lists tasks ordered by priority then due date
func (s *TaskService) List(ctx context.Context, input *ListTasksInput) ([]*models.Task, int64, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	filter := repositories.TaskFilter{
		StaffID:  input.StaffID,
		Status:   input.Status,
		Priority: input.Priority,
	}
	return s.taskRepo.List(ctx, filter, p.Offset, p.Limit)
}

// Start moves a pending task to in_progress
func (s *TaskService) Start(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusCompleted || task.Status == models.TaskStatusCancelled {
		return nil, ErrTaskAlreadyClosed
	}

	task.Status = models.TaskStatusInProgress
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks a task completed and stamps completion time
func (s *TaskService) Complete(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusCompleted || task.Status == models.TaskStatusCancelled {
		return nil, ErrTaskAlreadyClosed
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Cancel cancels a task
func (s *TaskService) Cancel(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusCompleted || task.Status == models.TaskStatusCancelled {
		return nil, ErrTaskAlreadyClosed
	}

	task.Status = models.TaskStatusCancelled
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Pending returns a staff member's pending and in-progress tasks
func (s *TaskService) Pending(ctx context.Context, staffID uint) ([]*models.Task, error) {
	return s.taskRepo.ListPending(ctx, staffID)
}

// Overdue returns tasks past their due date that were never completed.
// Cancelled tasks remain included.
func (s *TaskService) Overdue(ctx context.Context) ([]*models.Task, error) {
	return s.taskRepo.ListOverdue(ctx, time.Now())
}
