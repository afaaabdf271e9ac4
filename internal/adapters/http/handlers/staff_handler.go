package handlers

import (
	"errors"
	"strconv"

	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/pagination"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StaffHandler handles staff management endpoints
type StaffHandler struct {
	staffService *services.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
	}
}

// CreateStaffRequest represents create staff request body
type CreateStaffRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
}

// CreateStaff handles staff creation (Admin only)
// @Summary Create staff member
// @Description Create a new staff record with an auto-generated employee ID
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateStaffRequest true "Staff data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FirstName == "" {
		return response.BadRequest(c, "First name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	staff, err := h.staffService.Create(c.Context(), &services.CreateStaffInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Designation: req.Designation,
	})
	if err != nil {
		if errors.Is(err, services.ErrStaffEmailExists) {
			return response.Conflict(c, "Staff email already exists")
		}
		return response.InternalServerError(c, "Failed to create staff member")
	}

	return response.Created(c, "Staff member created successfully", fiber.Map{
		"staff": staff,
	})
}

// ListStaff handles listing staff members
// @Summary List staff
// @Description Get a paginated list of staff members
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name or email"
// @Success 200 {object} response.Response
// @Router /staff [get]
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	staff, total, err := h.staffService.List(c.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list staff")
	}

	return response.Success(c, "Staff retrieved successfully", fiber.Map{
		"staff": staff,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// GetStaff handles getting a staff member by ID
// @Summary Get staff member by ID
// @Description Get a specific staff member by ID
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	staff, err := h.staffService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return response.NotFound(c, "Staff member not found")
		}
		return response.InternalServerError(c, "Failed to get staff member")
	}

	return response.Success(c, "Staff member retrieved successfully", fiber.Map{
		"staff": staff,
	})
}

// UpdateStaffRequest represents update staff request body
type UpdateStaffRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
}

// UpdateStaff handles updating a staff member (Admin only)
// @Summary Update staff member
// @Description Update a staff member's details
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Param body body UpdateStaffRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	var req UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	staff, err := h.staffService.Update(c.Context(), uint(id), &services.UpdateStaffInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Designation: req.Designation,
	})
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return response.NotFound(c, "Staff member not found")
		}
		return response.InternalServerError(c, "Failed to update staff member")
	}

	return response.Success(c, "Staff member updated successfully", fiber.Map{
		"staff": staff,
	})
}
