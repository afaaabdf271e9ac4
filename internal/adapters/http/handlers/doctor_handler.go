package handlers

import (
	"errors"
	"strconv"

	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/pagination"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DoctorHandler handles doctor management endpoints
type DoctorHandler struct {
	doctorService *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
	}
}

// CreateDoctorRequest represents create doctor request body
type CreateDoctorRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
}

// CreateDoctor handles doctor creation (Admin only)
// @Summary Create doctor
// @Description Create a new doctor record with an auto-generated employee ID
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDoctorRequest true "Doctor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors [post]
func (h *DoctorHandler) CreateDoctor(c *fiber.Ctx) error {
	var req CreateDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FirstName == "" {
		return response.BadRequest(c, "First name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	doctor, err := h.doctorService.Create(c.Context(), &services.CreateDoctorInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Qualification:  req.Qualification,
	})
	if err != nil {
		if errors.Is(err, services.ErrDoctorEmailExists) {
			return response.Conflict(c, "Doctor email already exists")
		}
		return response.InternalServerError(c, "Failed to create doctor")
	}

	return response.Created(c, "Doctor created successfully", fiber.Map{
		"doctor": doctor,
	})
}

// ListDoctors handles listing doctors
// @Summary List doctors
// @Description Get a paginated list of doctors with optional filters
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name or email"
// @Param specialization query string false "Filter by specialization"
// @Param available query bool false "Filter by availability"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListDoctorsInput{
		Page:           params.Page,
		Limit:          params.Limit,
		Search:         c.Query("search"),
		Specialization: c.Query("specialization"),
	}

	if v := c.Query("available"); v != "" {
		available := v == "true"
		input.Available = &available
	}

	doctors, total, err := h.doctorService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list doctors")
	}

	return response.Success(c, "Doctors retrieved successfully", fiber.Map{
		"doctors": doctors,
		"total":   total,
		"page":    input.Page,
		"limit":   input.Limit,
	})
}

// GetDoctor handles getting a doctor by ID
// @Summary Get doctor by ID
// @Description Get a specific doctor by ID
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	doctor, err := h.doctorService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to get doctor")
	}

	return response.Success(c, "Doctor retrieved successfully", fiber.Map{
		"doctor": doctor,
	})
}

// UpdateDoctorRequest represents update doctor request body
type UpdateDoctorRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	Qualification  *string `json:"qualification"`
}

// UpdateDoctor handles updating a doctor (Admin only)
// @Summary Update doctor
// @Description Update a doctor's details
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Param body body UpdateDoctorRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [put]
func (h *DoctorHandler) UpdateDoctor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	var req UpdateDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doctor, err := h.doctorService.Update(c.Context(), uint(id), &services.UpdateDoctorInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Qualification:  req.Qualification,
	})
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to update doctor")
	}

	return response.Success(c, "Doctor updated successfully", fiber.Map{
		"doctor": doctor,
	})
}

// SetAvailabilityRequest represents availability toggle request body
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// SetAvailability handles toggling a doctor's availability
// @Summary Set doctor availability
// @Description Mark a doctor as available or unavailable for appointments
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Param body body SetAvailabilityRequest true "Availability flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [patch]
func (h *DoctorHandler) SetAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doctor, err := h.doctorService.SetAvailability(c.Context(), uint(id), req.Available)
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to update availability")
	}

	return response.Success(c, "Doctor availability updated", fiber.Map{
		"doctor": doctor,
	})
}
