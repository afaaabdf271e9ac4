package repositories

import (
	"context"
	"errors"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
)

// ErrOpenAttendanceExists is returned by CreateExclusive when the employee
// already has an open record inside the requested day window.
var ErrOpenAttendanceExists = errors.New("open attendance record already exists")

// PortalUserRepository defines portal user repository interface
type PortalUserRepository interface {
	Create(ctx context.Context, user *models.PortalUser) error
	GetByID(ctx context.Context, id uint) (*models.PortalUser, error)
	GetByEmail(ctx context.Context, email string) (*models.PortalUser, error)
	Update(ctx context.Context, user *models.PortalUser) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.PortalUser, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	Search     string
	Status     string
	Department string
	IsActive   *bool
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	GetByEmpID(ctx context.Context, empID string) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	List(ctx context.Context, filter EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LastEmpID(ctx context.Context, prefix string) (string, error)
}

// DoctorFilter narrows doctor listings
type DoctorFilter struct {
	Search         string
	Specialization string
	Available      *bool
}

// DoctorRepository defines doctor repository interface
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	List(ctx context.Context, filter DoctorFilter, offset, limit int) ([]*models.Doctor, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LastEmpID(ctx context.Context, prefix string) (string, error)
}

// StaffRepository defines staff repository interface
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id uint) (*models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	List(ctx context.Context, search string, offset, limit int) ([]*models.Staff, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LastEmpID(ctx context.Context, prefix string) (string, error)
}

// PatientFilter narrows patient listings
type PatientFilter struct {
	Search    string
	KYCStatus string
}

// PatientRepository defines patient repository interface
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	List(ctx context.Context, filter PatientFilter, offset, limit int) ([]*models.Patient, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AppointmentFilter narrows appointment listings
type AppointmentFilter struct {
	PatientID uint
	DoctorID  uint
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error)
	ListForDoctorBetween(ctx context.Context, doctorID uint, from, to time.Time) ([]*models.Appointment, error)
}

// AttendanceRepository defines attendance repository interface
type AttendanceRepository interface {
	// CreateExclusive inserts att only if no open record exists for the
	// employee inside [dayStart, dayEnd); the check and insert run in one
	// transaction. Returns ErrOpenAttendanceExists otherwise.
	CreateExclusive(ctx context.Context, att *models.Attendance, dayStart, dayEnd time.Time) error
	GetOpenForWindow(ctx context.Context, employeeID uint, dayStart, dayEnd time.Time) (*models.Attendance, error)
	Update(ctx context.Context, att *models.Attendance) error
	ListByEmployee(ctx context.Context, employeeID uint, from, to *time.Time) ([]*models.Attendance, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*models.Attendance, error)
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]*models.Attendance, error)
}

// TaskFilter narrows task listings
type TaskFilter struct {
	StaffID  uint
	Status   string
	Priority string
}

// TaskRepository defines task repository interface
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	List(ctx context.Context, filter TaskFilter, offset, limit int) ([]*models.Task, int64, error)
	ListPending(ctx context.Context, staffID uint) ([]*models.Task, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*models.Task, error)
}

// KYCRepository defines KYC document repository interface
type KYCRepository interface {
	GetByPatientID(ctx context.Context, patientID uint) (*models.KYCDocument, error)
	// SaveWithPatientStatus upserts the document and mirrors doc.Status onto
	// Patient.KYCStatus inside one transaction.
	SaveWithPatientStatus(ctx context.Context, doc *models.KYCDocument) error
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.KYCDocument, int64, error)
}

// ChatRepository defines chat message repository interface
type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	// ListByPatient returns messages newest-first with the total count
	ListByPatient(ctx context.Context, patientID uint, offset, limit int) ([]*models.ChatMessage, int64, error)
	// MarkRead flags the given staff-authored messages in the patient's
	// conversation as read; patient-authored messages are never touched.
	MarkRead(ctx context.Context, messageIDs []uint, patientID uint, readAt time.Time) error
	CountUnread(ctx context.Context, patientID uint) (int64, error)
}
