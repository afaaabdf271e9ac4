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

// PatientHandler handles patient intake and management endpoints
type PatientHandler struct {
	patientService *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// CreatePatientRequest represents patient intake request body
type CreatePatientRequest struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address"`
	BloodGroup  string     `json:"blood_group"`
}

// CreatePatient handles patient intake
// @Summary Register patient
// @Description Register a new patient; KYC status starts as pending
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePatientRequest true "Patient data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) CreatePatient(c *fiber.Ctx) error {
	var req CreatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FirstName == "" {
		return response.BadRequest(c, "First name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	patient, err := h.patientService.Create(c.Context(), &services.CreatePatientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		BloodGroup:  req.BloodGroup,
	})
	if err != nil {
		if errors.Is(err, services.ErrPatientEmailExists) {
			return response.Conflict(c, "Patient email already exists")
		}
		return response.InternalServerError(c, "Failed to register patient")
	}

	return response.Created(c, "Patient registered successfully", fiber.Map{
		"patient": patient,
	})
}

// ListPatients handles listing patients
// @Summary List patients
// @Description Get a paginated list of patients with optional filters
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name, email or phone"
// @Param kyc_status query string false "Filter by KYC status"
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) ListPatients(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListPatientsInput{
		Page:      params.Page,
		Limit:     params.Limit,
		Search:    c.Query("search"),
		KYCStatus: c.Query("kyc_status"),
	}

	patients, total, err := h.patientService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list patients")
	}

	return response.Success(c, "Patients retrieved successfully", fiber.Map{
		"patients": patients,
		"total":    total,
		"page":     input.Page,
		"limit":    input.Limit,
	})
}

// GetPatient handles getting a patient by ID
// @Summary Get patient by ID
// @Description Get a specific patient by ID
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatient(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	patient, err := h.patientService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to get patient")
	}

	return response.Success(c, "Patient retrieved successfully", fiber.Map{
		"patient": patient,
	})
}

// UpdatePatientRequest represents update patient request body
type UpdatePatientRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	BloodGroup *string `json:"blood_group"`
}

// UpdatePatient handles updating a patient
// @Summary Update patient
// @Description Update a patient's contact details
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body UpdatePatientRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) UpdatePatient(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	var req UpdatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	patient, err := h.patientService.Update(c.Context(), uint(id), &services.UpdatePatientInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Address:    req.Address,
		BloodGroup: req.BloodGroup,
	})
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to update patient")
	}

	return response.Success(c, "Patient updated successfully", fiber.Map{
		"patient": patient,
	})
}
