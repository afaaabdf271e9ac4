package handlers

import (
	"errors"
	"strconv"
	"time"

	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/pagination"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles staff task endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest represents create task request body
type CreateTaskRequest struct {
	StaffID     uint       `json:"staff_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// CreateTask handles task assignment
// @Summary Assign task
// @Description Assign a task to a staff member
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTaskRequest true "Task data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.StaffID == 0 {
		return response.BadRequest(c, "Staff ID is required")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	input := &services.CreateTaskInput{
		StaffID:     req.StaffID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	// Record who assigned the task when authenticated
	if userID, ok := c.Locals("userID").(uint); ok {
		input.AssignedBy = &userID
	}

	task, err := h.taskService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return response.NotFound(c, "Staff member not found")
		}
		return response.InternalServerError(c, "Failed to create task")
	}

	return response.Created(c, "Task created successfully", fiber.Map{
		"task": task,
	})
}

// ListTasks handles listing tasks
// @Summary List tasks
// @Description Get a paginated list of tasks ordered by priority then due date
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param staff_id query int false "Filter by staff member"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Success 200 {object} response.Response
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	staffID, _ := strconv.ParseUint(c.Query("staff_id", "0"), 10, 32)

	tasks, total, err := h.taskService.List(c.Context(), &services.ListTasksInput{
		Page:     params.Page,
		Limit:    params.Limit,
		StaffID:  uint(staffID),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}

	return response.Success(c, "Tasks retrieved successfully", fiber.Map{
		"tasks": tasks,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// GetTask handles getting a task by ID
// @Summary Get task by ID
// @Description Get a specific task by ID
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to get task")
	}

	return response.Success(c, "Task retrieved successfully", fiber.Map{
		"task": task,
	})
}

// StartTask handles moving a task to in_progress
// @Summary Start task
// @Description Mark a pending task as in progress
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tasks/{id}/start [post]
func (h *TaskHandler) StartTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Start(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskAlreadyClosed):
			return response.Conflict(c, "Task is already completed or cancelled")
		default:
			return response.InternalServerError(c, "Failed to start task")
		}
	}

	return response.Success(c, "Task started", fiber.Map{
		"task": task,
	})
}

// CompleteTask handles completing a task
// @Summary Complete task
// @Description Mark a task as completed
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Complete(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskAlreadyClosed):
			return response.Conflict(c, "Task is already completed or cancelled")
		default:
			return response.InternalServerError(c, "Failed to complete task")
		}
	}

	return response.Success(c, "Task completed", fiber.Map{
		"task": task,
	})
}

// CancelTask handles cancelling a task
// @Summary Cancel task
// @Description Cancel a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tasks/{id}/cancel [post]
func (h *TaskHandler) CancelTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Cancel(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskAlreadyClosed):
			return response.Conflict(c, "Task is already completed or cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel task")
		}
	}

	return response.Success(c, "Task cancelled", fiber.Map{
		"task": task,
	})
}

// PendingTasks handles listing a staff member's pending tasks
// @Summary Pending tasks for staff
// @Description Get all pending and in-progress tasks for a staff member
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Response
// @Router /tasks/staff/{id}/pending [get]
func (h *TaskHandler) PendingTasks(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	tasks, err := h.taskService.Pending(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to get pending tasks")
	}

	return response.Success(c, "Pending tasks retrieved", fiber.Map{
		"tasks": tasks,
	})
}

// OverdueTasks handles listing overdue tasks
// @Summary Overdue tasks
// @Description Get all tasks past their due date that are not completed
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /tasks/overdue [get]
func (h *TaskHandler) OverdueTasks(c *fiber.Ctx) error {
	tasks, err := h.taskService.Overdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get overdue tasks")
	}

	return response.Success(c, "Overdue tasks retrieved", fiber.Map{
		"tasks": tasks,
	})
}
