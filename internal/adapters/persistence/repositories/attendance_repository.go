package repositories

import (
	"context"
	"errors"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// CreateExclusive inserts att unless an open record already exists for the
// employee in [dayStart, dayEnd). Check and insert share one transaction so
// two concurrent check-ins cannot both pass the existence check.
func (r *attendanceRepository) CreateExclusive(ctx context.Context, att *models.Attendance, dayStart, dayEnd time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Attendance
		err := tx.
			Where("employee_id = ? AND check_out_time IS NULL AND check_in_time >= ? AND check_in_time < ?",
				att.EmployeeID, dayStart, dayEnd).
			First(&existing).Error
		if err == nil {
			return ErrOpenAttendanceExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(att).Error
	})
}

// GetOpenForWindow returns the open record for the employee within the window
func (r *attendanceRepository) GetOpenForWindow(ctx context.Context, employeeID uint, dayStart, dayEnd time.Time) (*models.Attendance, error) {
	var att models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND check_out_time IS NULL AND check_in_time >= ? AND check_in_time < ?",
			employeeID, dayStart, dayEnd).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// Update updates an attendance record
func (r *attendanceRepository) Update(ctx context.Context, att *models.Attendance) error {
	return r.db.WithContext(ctx).Save(att).Error
}

// ListByEmployee returns an employee's records newest check-in first,
// optionally bounded by [from, to) on check_in_time
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID uint, from, to *time.Time) ([]*models.Attendance, error) {
	var records []*models.Attendance

	query := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if from != nil {
		query = query.Where("check_in_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("check_in_time < ?", *to)
	}

	err := query.Order("check_in_time DESC").Find(&records).Error
	return records, err
}

// ListRange returns all records in [from, to) with identity relations preloaded
func (r *attendanceRepository) ListRange(ctx context.Context, from, to time.Time) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Staff").
		Where("check_in_time >= ? AND check_in_time < ?", from, to).
		Order("check_in_time DESC").
		Find(&records).Error
	return records, err
}

// ListOpenBefore returns open records whose check-in is older than cutoff
// (stale sessions nobody closed)
func (r *attendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := r.db.WithContext(ctx).
		Where("check_out_time IS NULL AND check_in_time < ?", cutoff).
		Find(&records).Error
	return records, err
}
