package repositories

import (
	"context"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// appointmentRepository implements AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment
func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// GetByID gets an appointment by ID with patient and doctor preloaded
func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&appt, id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Update updates an appointment
func (r *appointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// List lists appointments with filters and pagination
func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error) {
	var appts []*models.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date < ?", *filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Patient").
		Preload("Doctor").
		Order("date DESC, time_slot DESC").
		Offset(offset).Limit(limit).
		Find(&appts).Error; err != nil {
		return nil, 0, err
	}

	return appts, total, nil
}

// ListForDoctorBetween returns a doctor's non-cancelled appointments with
// date in [from, to)
func (r *appointmentRepository) ListForDoctorBetween(ctx context.Context, doctorID uint, from, to time.Time) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND status <> ? AND date >= ? AND date < ?",
			doctorID, models.AppointmentStatusCancelled, from, to).
		Order("time_slot ASC").
		Find(&appts).Error
	return appts, err
}
