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

// Appointment service errors
var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCancelled = errors.New("appointment is cancelled")
	ErrDoctorUnavailable    = errors.New("doctor is not available")
)

// AppointmentService handles appointment scheduling
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
	doctorRepo      repositories.DoctorRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
	}
}

// CreateAppointmentInput represents create appointment input
type CreateAppointmentInput struct {
	PatientID uint      `json:"patient_id" validate:"required"`
	DoctorID  uint      `json:"doctor_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	TimeSlot  string    `json:"time_slot" validate:"required"`
	Reason    string    `json:"reason"`
}

// ListAppointmentsInput represents list appointments input
type ListAppointmentsInput struct {
	Page      int
	Limit     int
	PatientID uint
	DoctorID  uint
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// Create schedules a new appointment. Overlapping slots for the same doctor
// are allowed; no conflict detection is performed.
func (s *AppointmentService) Create(ctx context.Context, input *CreateAppointmentInput) (*models.Appointment, error) {
	// 1. Validate patient
	if _, err := s.patientRepo.GetByID(ctx, input.PatientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	// 2. Validate doctor and availability
	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	if !doctor.IsAvailable {
		return nil, ErrDoctorUnavailable
	}

	// 3. Create
	appt := &models.Appointment{
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
		Reason:    input.Reason,
		Status:    models.AppointmentStatusScheduled,
	}

	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment scheduled: patient %d with doctor %s on %s %s",
		input.PatientID, doctor.EmpID, input.Date.Format("2006-01-02"), input.TimeSlot)
	return appt, nil
}

// GetByID gets an appointment with patient and doctor expanded
func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appt, nil
}

// List lists appointments with filters and pagination
func (s *AppointmentService) List(ctx context.Context, input *ListAppointmentsInput) ([]*models.Appointment, int64, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	filter := repositories.AppointmentFilter{
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		Status:    input.Status,
		DateFrom:  input.DateFrom,
		DateTo:    input.DateTo,
	}
	return s.appointmentRepo.List(ctx, filter, p.Offset, p.Limit)
}

// Accept confirms a scheduled appointment
func (s *AppointmentService) Accept(ctx context.Context, id uint) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.AppointmentStatusCancelled {
		return nil, ErrAppointmentCancelled
	}

	appt.Status = models.AppointmentStatusConfirmed
	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel cancels an appointment
func (s *AppointmentService) Cancel(ctx context.Context, id uint) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appt.Status = models.AppointmentStatusCancelled
	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	log.Printf("🗑️ Appointment %d cancelled", appt.ID)
	return appt, nil
}

// Reschedule overwrites date/time in place; no history row is kept
func (s *AppointmentService) Reschedule(ctx context.Context, id uint, date time.Time, timeSlot string) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.AppointmentStatusCancelled {
		return nil, ErrAppointmentCancelled
	}

	appt.Date = date
	appt.TimeSlot = timeSlot
	appt.Status = models.AppointmentStatusRescheduled

	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment %d rescheduled to %s %s", appt.ID, date.Format("2006-01-02"), timeSlot)
	return appt, nil
}

// TodayForDoctor returns the doctor's non-cancelled appointments with date in
// [local midnight, next midnight)
func (s *AppointmentService) TodayForDoctor(ctx context.Context, doctorID uint) ([]*models.Appointment, error) {
	dayStart, dayEnd := DayWindow(time.Now())
	return s.appointmentRepo.ListForDoctorBetween(ctx, doctorID, dayStart, dayEnd)
}
