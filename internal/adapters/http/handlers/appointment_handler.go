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

// AppointmentHandler handles appointment scheduling endpoints
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// CreateAppointmentRequest represents appointment booking request body
type CreateAppointmentRequest struct {
	PatientID uint   `json:"patient_id"`
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	Reason    string `json:"reason"`
}

// CreateAppointment handles booking an appointment
// @Summary Book appointment
// @Description Book an appointment for a patient with an available doctor
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.PatientID == 0 || req.DoctorID == 0 {
		return response.BadRequest(c, "Patient ID and doctor ID are required")
	}
	if req.TimeSlot == "" {
		return response.BadRequest(c, "Time slot is required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	appointment, err := h.appointmentService.Create(c.Context(), &services.CreateAppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		TimeSlot:  req.TimeSlot,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPatientNotFound):
			return response.NotFound(c, "Patient not found")
		case errors.Is(err, services.ErrDoctorNotFound):
			return response.NotFound(c, "Doctor not found")
		case errors.Is(err, services.ErrDoctorUnavailable):
			return response.Conflict(c, "Doctor is not available")
		default:
			return response.InternalServerError(c, "Failed to book appointment")
		}
	}

	return response.Created(c, "Appointment booked successfully", fiber.Map{
		"appointment": appointment,
	})
}

// ListAppointments handles listing appointments
// @Summary List appointments
// @Description Get a paginated list of appointments with optional filters
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param patient_id query int false "Filter by patient"
// @Param doctor_id query int false "Filter by doctor"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	patientID, _ := strconv.ParseUint(c.Query("patient_id", "0"), 10, 32)
	doctorID, _ := strconv.ParseUint(c.Query("doctor_id", "0"), 10, 32)

	input := &services.ListAppointmentsInput{
		Page:      params.Page,
		Limit:     params.Limit,
		PatientID: uint(patientID),
		DoctorID:  uint(doctorID),
		Status:    c.Query("status"),
	}

	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			input.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			input.DateTo = &t
		}
	}

	appointments, total, err := h.appointmentService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}

	return response.Success(c, "Appointments retrieved successfully", fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         input.Page,
		"limit":        input.Limit,
	})
}

// GetAppointment handles getting an appointment by ID
// @Summary Get appointment by ID
// @Description Get a specific appointment by ID
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appointment, err := h.appointmentService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to get appointment")
	}

	return response.Success(c, "Appointment retrieved successfully", fiber.Map{
		"appointment": appointment,
	})
}

// AcceptAppointment handles confirming an appointment
// @Summary Confirm appointment
// @Description Confirm a scheduled appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/accept [post]
func (h *AppointmentHandler) AcceptAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appointment, err := h.appointmentService.Accept(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrAppointmentCancelled):
			return response.Conflict(c, "Appointment is cancelled")
		default:
			return response.InternalServerError(c, "Failed to confirm appointment")
		}
	}

	return response.Success(c, "Appointment confirmed", fiber.Map{
		"appointment": appointment,
	})
}

// CancelAppointment handles cancelling an appointment
// @Summary Cancel appointment
// @Description Cancel a scheduled appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appointment, err := h.appointmentService.Cancel(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to cancel appointment")
	}

	return response.Success(c, "Appointment cancelled", fiber.Map{
		"appointment": appointment,
	})
}

// RescheduleRequest represents reschedule request body
type RescheduleRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// RescheduleAppointment handles rescheduling an appointment
// @Summary Reschedule appointment
// @Description Move an appointment to a new date and time slot
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param body body RescheduleRequest true "New date and time slot"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) RescheduleAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	var req RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TimeSlot == "" {
		return response.BadRequest(c, "Time slot is required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	appointment, err := h.appointmentService.Reschedule(c.Context(), uint(id), date, req.TimeSlot)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrAppointmentCancelled):
			return response.Conflict(c, "Appointment is cancelled")
		default:
			return response.InternalServerError(c, "Failed to reschedule appointment")
		}
	}

	return response.Success(c, "Appointment rescheduled", fiber.Map{
		"appointment": appointment,
	})
}

// TodayForDoctor handles the doctor's daily schedule
// @Summary Doctor's schedule for today
// @Description Get all of a doctor's non-cancelled appointments for today, ordered by time slot
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /appointments/doctor/{id}/today [get]
func (h *AppointmentHandler) TodayForDoctor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	appointments, err := h.appointmentService.TodayForDoctor(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to get today's appointments")
	}

	return response.Success(c, "Today's appointments retrieved", fiber.Map{
		"appointments": appointments,
	})
}
