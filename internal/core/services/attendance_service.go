package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Attendance errors
var (
	ErrAlreadyCheckedIn    = errors.New("employee already checked in today")
	ErrNoCheckIn           = errors.New("no check-in found for today")
	ErrEmployeeNotWorking  = errors.New("employee is not active")
	ErrInvalidPeriod       = errors.New("invalid date range")
)

// Working-hours thresholds for status derivation
const (
	FullDayHours = 8.0
	HalfDayHours = 4.0
)

// AttendanceService owns the daily check-in/check-out lifecycle
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	employeeRepo   repositories.EmployeeRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	employeeRepo repositories.EmployeeRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// CheckInInput represents check-in input
type CheckInInput struct {
	StaffID  *uint   `json:"staff_id"`
	Photo    *string `json:"photo"`
	Location *string `json:"location"`
}

// CheckOutInput represents check-out input
type CheckOutInput struct {
	StaffID  *uint   `json:"staff_id"`
	Photo    *string `json:"photo"`
	Location *string `json:"location"`
}

// TodayStatusOutput summarizes the employee's attendance for today
type TodayStatusOutput struct {
	CheckedIn    bool       `json:"checked_in"`
	CheckedOut   bool       `json:"checked_out"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	WorkingHours *float64   `json:"working_hours"`
	Status       string     `json:"status,omitempty"`
}

// DayWindow returns the local midnight-to-midnight window containing t
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// WorkingHours computes elapsed hours between check-in and check-out,
// rounded to 2 decimal places
func WorkingHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Seconds() / 3600
	return math.Round(hours*100) / 100
}

// StatusForHours derives the attendance status from worked hours:
// >=8h present, >=4h half_day, otherwise late
func StatusForHours(hours float64) string {
	switch {
	case hours >= FullDayHours:
		return models.AttendanceStatusPresent
	case hours >= HalfDayHours:
		return models.AttendanceStatusHalfDay
	default:
		return models.AttendanceStatusLate
	}
}

// CheckIn opens today's attendance record for the employee.
// Fails with ErrAlreadyCheckedIn when an open record exists in today's window.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID uint, input *CheckInInput) (*models.Attendance, error) {
	// 1. Validate employee
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrEmployeeNotWorking
	}

	// 2. Create within today's window; existence check and insert are atomic
	now := time.Now()
	dayStart, dayEnd := DayWindow(now)

	att := &models.Attendance{
		EmployeeID:  employeeID,
		CheckInTime: now,
		// Provisional until check-out derives the real status
		Status: models.AttendanceStatusPresent,
	}
	if input != nil {
		att.StaffID = input.StaffID
		att.CheckInPhoto = input.Photo
		att.CheckInLocation = input.Location
	}

	if err := s.attendanceRepo.CreateExclusive(ctx, att, dayStart, dayEnd); err != nil {
		if errors.Is(err, repositories.ErrOpenAttendanceExists) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	log.Printf("✅ Check-in recorded: employee %s at %s", employee.EmpID, now.Format("15:04:05"))
	return att, nil
}

// CheckOut closes today's open record, computing working hours and status
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID uint, input *CheckOutInput) (*models.Attendance, error) {
	// 1. Find today's open record
	now := time.Now()
	dayStart, dayEnd := DayWindow(now)

	att, err := s.attendanceRepo.GetOpenForWindow(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCheckIn
		}
		return nil, err
	}

	// 2. Derive hours and status
	hours := WorkingHours(att.CheckInTime, now)
	att.CheckOutTime = &now
	att.WorkingHours = &hours
	att.Status = StatusForHours(hours)
	if input != nil {
		if input.StaffID != nil {
			att.StaffID = input.StaffID
		}
		att.CheckOutPhoto = input.Photo
		att.CheckOutLocation = input.Location
	}

	// 3. Persist
	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return nil, err
	}

	log.Printf("✅ Check-out recorded: employee %d worked %.2fh (%s)", employeeID, hours, att.Status)
	return att, nil
}

// TodayStatus reports whether the employee has a record for today and its
// timestamps/hours; all fields are zero when no record exists
func (s *AttendanceService) TodayStatus(ctx context.Context, employeeID uint) (*TodayStatusOutput, error) {
	dayStart, dayEnd := DayWindow(time.Now())

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, &dayStart, &dayEnd)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &TodayStatusOutput{}, nil
	}

	latest := records[0]
	out := &TodayStatusOutput{
		CheckedIn:   true,
		CheckInTime: &latest.CheckInTime,
	}
	if latest.CheckOutTime != nil {
		out.CheckedOut = true
		out.CheckOutTime = latest.CheckOutTime
		out.WorkingHours = latest.WorkingHours
		out.Status = latest.Status
	}
	return out, nil
}

// History returns an employee's records newest first, optionally bounded by
// [from, to) on check-in time
func (s *AttendanceService) History(ctx context.Context, employeeID uint, from, to *time.Time) ([]*models.Attendance, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidPeriod
	}
	return s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
}

// ListAll returns every employee's records in [from, to) with identity fields
func (s *AttendanceService) ListAll(ctx context.Context, from, to time.Time) ([]*models.Attendance, error) {
	if to.Before(from) {
		return nil, ErrInvalidPeriod
	}
	return s.attendanceRepo.ListRange(ctx, from, to)
}

// CloseStaleSessions closes open records whose check-in predates cutoff,
// deriving hours and status from the cutoff time. Used by the nightly job.
func (s *AttendanceService) CloseStaleSessions(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.attendanceRepo.ListOpenBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, att := range stale {
		end := cutoff
		hours := WorkingHours(att.CheckInTime, end)
		att.CheckOutTime = &end
		att.WorkingHours = &hours
		att.Status = StatusForHours(hours)
		if err := s.attendanceRepo.Update(ctx, att); err != nil {
			return closed, err
		}
		closed++
	}

	if closed > 0 {
		log.Printf("🕛 Auto-closed %d stale attendance session(s)", closed)
	}
	return closed, nil
}
