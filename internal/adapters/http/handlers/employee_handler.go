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

// EmployeeHandler handles employee management endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployeeRequest represents create employee request body
type CreateEmployeeRequest struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	JoinedAt   *time.Time `json:"joined_at"`
}

// CreateEmployee handles employee creation (Admin only)
// @Summary Create employee
// @Description Create a new employee record with an auto-generated employee ID
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEmployeeRequest true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FirstName == "" {
		return response.BadRequest(c, "First name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	employee, err := h.employeeService.Create(c.Context(), &services.CreateEmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		JoinedAt:   req.JoinedAt,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmployeeEmailExists) {
			return response.Conflict(c, "Employee email already exists")
		}
		return response.InternalServerError(c, "Failed to create employee")
	}

	return response.Created(c, "Employee created successfully", fiber.Map{
		"employee": employee,
	})
}

// ListEmployees handles listing employees
// @Summary List employees
// @Description Get a paginated list of employees with optional filters
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name, email or employee ID"
// @Param status query string false "Filter by status (working, not_working)"
// @Param department query string false "Filter by department"
// @Param include_inactive query bool false "Include deactivated employees"
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListEmployeesInput{
		Page:       params.Page,
		Limit:      params.Limit,
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
	}

	// Active records only unless explicitly asked for everything
	if c.Query("include_inactive") != "true" {
		active := true
		input.IsActive = &active
	}

	employees, total, err := h.employeeService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return response.Success(c, "Employees retrieved successfully", fiber.Map{
		"employees": employees,
		"total":     total,
		"page":      input.Page,
		"limit":     input.Limit,
	})
}

// GetEmployee handles getting an employee by ID
// @Summary Get employee by ID
// @Description Get a specific employee by ID
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	return response.Success(c, "Employee retrieved successfully", fiber.Map{
		"employee": employee,
	})
}

// UpdateEmployeeRequest represents update employee request body
type UpdateEmployeeRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

// UpdateEmployee handles updating an employee (Admin only)
// @Summary Update employee
// @Description Update an employee's details
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.Context(), uint(id), &services.UpdateEmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to update employee")
	}

	return response.Success(c, "Employee updated successfully", fiber.Map{
		"employee": employee,
	})
}

// DeleteEmployee handles deactivating an employee (Admin only)
// @Summary Deactivate employee
// @Description Soft delete an employee; the record stays queryable and can be restored
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.SoftDelete(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrEmployeeDeleted):
			return response.Conflict(c, "Employee is already deactivated")
		default:
			return response.InternalServerError(c, "Failed to deactivate employee")
		}
	}

	return response.Success(c, "Employee deactivated successfully", fiber.Map{
		"employee": employee,
	})
}

// RestoreEmployee handles restoring a deactivated employee (Admin only)
// @Summary Restore employee
// @Description Restore a previously deactivated employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id}/restore [post]
func (h *EmployeeHandler) RestoreEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.Restore(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrEmployeeNotDeleted):
			return response.Conflict(c, "Employee is not deactivated")
		default:
			return response.InternalServerError(c, "Failed to restore employee")
		}
	}

	return response.Success(c, "Employee restored successfully", fiber.Map{
		"employee": employee,
	})
}
