package services

import (
	"context"
	"log"
	"time"

	"clinicare-portal/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs:
//   - 23:59 daily: close attendance sessions nobody checked out of
//   - 03:00 daily: purge expired refresh tokens
type CronService struct {
	cron              *cron.Cron
	attendanceService *AttendanceService
	refreshTokenRepo  repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	attendanceRepo := repositories.NewAttendanceRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)

	return &CronService{
		cron:              cron.New(),
		attendanceService: NewAttendanceService(attendanceRepo, employeeRepo),
		refreshTokenRepo:  repositories.NewRefreshTokenRepository(db),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	s.cron.AddFunc("59 23 * * *", s.closeStaleAttendance)
	s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)
	s.cron.Start()
	log.Println("⏰ Cron jobs scheduled (attendance auto-close 23:59, token purge 03:00)")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
}

func (s *CronService) closeStaleAttendance() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Close anything still open at end of day, stamping hours as of now
	closed, err := s.attendanceService.CloseStaleSessions(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Attendance auto-close failed: %v", err)
		return
	}
	if closed == 0 {
		log.Println("⏰ Attendance auto-close: nothing open")
	}
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
		return
	}
	log.Println("🧹 Expired refresh tokens purged")
}
