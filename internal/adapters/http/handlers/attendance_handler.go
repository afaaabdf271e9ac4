package handlers

import (
	"errors"
	"strconv"
	"time"

	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles attendance tracking endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CheckInRequest represents check-in request body
type CheckInRequest struct {
	EmployeeID uint    `json:"employee_id"`
	StaffID    *uint   `json:"staff_id"`
	Photo      *string `json:"photo"`
	Location   *string `json:"location"`
}

// CheckIn handles employee check-in
// @Summary Check in
// @Description Record an employee's check-in for today; rejects a second open check-in
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckInRequest true "Check-in data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.EmployeeID == 0 {
		return response.BadRequest(c, "Employee ID is required")
	}

	record, err := h.attendanceService.CheckIn(c.Context(), req.EmployeeID, &services.CheckInInput{
		StaffID:  req.StaffID,
		Photo:    req.Photo,
		Location: req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrEmployeeNotWorking):
			return response.Forbidden(c, "Employee is not active")
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			return response.Conflict(c, "Already checked in today")
		default:
			return response.InternalServerError(c, "Failed to check in")
		}
	}

	return response.Created(c, "Checked in successfully", fiber.Map{
		"attendance": record,
	})
}

// CheckOutRequest represents check-out request body
type CheckOutRequest struct {
	EmployeeID uint    `json:"employee_id"`
	StaffID    *uint   `json:"staff_id"`
	Photo      *string `json:"photo"`
	Location   *string `json:"location"`
}

// CheckOut handles employee check-out
// @Summary Check out
// @Description Record an employee's check-out, deriving working hours and day status
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckOutRequest true "Check-out data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.EmployeeID == 0 {
		return response.BadRequest(c, "Employee ID is required")
	}

	record, err := h.attendanceService.CheckOut(c.Context(), req.EmployeeID, &services.CheckOutInput{
		StaffID:  req.StaffID,
		Photo:    req.Photo,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoCheckIn) {
			return response.NotFound(c, "No open check-in found for today")
		}
		return response.InternalServerError(c, "Failed to check out")
	}

	return response.Success(c, "Checked out successfully", fiber.Map{
		"attendance": record,
	})
}

// TodayStatus handles today's attendance status for an employee
// @Summary Today's attendance status
// @Description Get an employee's check-in/check-out state for today
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Router /attendance/{id}/today [get]
func (h *AttendanceHandler) TodayStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	status, err := h.attendanceService.TodayStatus(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to get attendance status")
	}

	return response.Success(c, "Attendance status retrieved", fiber.Map{
		"status": status,
	})
}

// History handles an employee's attendance history
// @Summary Attendance history
// @Description Get an employee's attendance records, optionally within a date range
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /attendance/{id}/history [get]
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		}
		// Include the whole end day
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}

	records, err := h.attendanceService.History(c.Context(), uint(id), from, to)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			return response.BadRequest(c, "Invalid date range")
		}
		return response.InternalServerError(c, "Failed to get attendance history")
	}

	return response.Success(c, "Attendance history retrieved", fiber.Map{
		"records": records,
	})
}

// ListAll handles the clinic-wide attendance report (Admin only)
// @Summary Attendance report
// @Description Get all attendance records in a date range
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /attendance [get]
func (h *AttendanceHandler) ListAll(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	records, err := h.attendanceService.ListAll(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			return response.BadRequest(c, "Invalid date range")
		}
		return response.InternalServerError(c, "Failed to get attendance report")
	}

	return response.Success(c, "Attendance report retrieved", fiber.Map{
		"records": records,
	})
}
