package services

import (
	"context"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// StatsService aggregates dashboard counts for the admin overview.
// It queries the database directly; the numbers are informational and need
// no repository indirection.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Overview represents the admin dashboard counters
type Overview struct {
	Patients          int64 `json:"patients"`
	Doctors           int64 `json:"doctors"`
	ActiveEmployees   int64 `json:"active_employees"`
	TodayAppointments int64 `json:"today_appointments"`
	OpenAttendance    int64 `json:"open_attendance"`
	PendingKYC        int64 `json:"pending_kyc"`
}

// GetOverview returns the current dashboard counters
func (s *StatsService) GetOverview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Patient{}).Count(&overview.Patients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Doctor{}).Count(&overview.Doctors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Employee{}).
		Where("is_active = ?", true).
		Count(&overview.ActiveEmployees).Error; err != nil {
		return nil, err
	}

	dayStart, dayEnd := DayWindow(time.Now())
	if err := db.Model(&models.Appointment{}).
		Where("date >= ? AND date < ? AND status <> ?", dayStart, dayEnd, models.AppointmentStatusCancelled).
		Count(&overview.TodayAppointments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Attendance{}).
		Where("check_out_time IS NULL").
		Count(&overview.OpenAttendance).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.KYCDocument{}).
		Where("status IN ?", []string{models.KYCStatusSubmitted, models.KYCStatusUnderReview}).
		Count(&overview.PendingKYC).Error; err != nil {
		return nil, err
	}

	return overview, nil
}
