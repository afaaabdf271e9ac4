package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Identity Tables
// ============================================================

// Portal user roles
const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleDoctor  = "DOCTOR"
	RolePatient = "PATIENT"
)

// PortalUser represents portal_users table (authentication principal)
type PortalUser struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Email           string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password        string         `gorm:"size:255;not null" json:"-"`
	Role            string         `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CanAccessSystem bool           `gorm:"default:true" json:"can_access_system"`
	EmployeeID      *uint          `gorm:"index" json:"employee_id"`
	DoctorID        *uint          `gorm:"index" json:"doctor_id"`
	StaffID         *uint          `gorm:"index" json:"staff_id"`
	PatientID       *uint          `gorm:"index" json:"patient_id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PortalUser) TableName() string {
	return "portal_users"
}

// PortalUserResponse DTO
type PortalUserResponse struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	CanAccessSystem bool      `json:"can_access_system"`
	EmployeeID      *uint     `json:"employee_id,omitempty"`
	DoctorID        *uint     `json:"doctor_id,omitempty"`
	StaffID         *uint     `json:"staff_id,omitempty"`
	PatientID       *uint     `json:"patient_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *PortalUser) ToResponse() *PortalUserResponse {
	return &PortalUserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role,
		IsActive:        u.IsActive,
		CanAccessSystem: u.CanAccessSystem,
		EmployeeID:      u.EmployeeID,
		DoctorID:        u.DoctorID,
		StaffID:         u.StaffID,
		PatientID:       u.PatientID,
		CreatedAt:       u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      PortalUser `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Personnel & Patient Tables
// ============================================================

// Employee statuses
const (
	EmployeeStatusWorking    = "working"
	EmployeeStatusNotWorking = "not_working"
)

// Employee represents employees table.
// Soft delete is an explicit flag pair (is_active + deleted_at) instead of
// gorm.DeletedAt so deactivated employees stay queryable for history and restore.
type Employee struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmpID      string     `gorm:"uniqueIndex;size:20;not null" json:"emp_id"`
	FirstName  string     `gorm:"size:50;not null" json:"first_name"`
	LastName   string     `gorm:"size:50" json:"last_name"`
	Email      string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone      string     `gorm:"size:20" json:"phone"`
	Department string     `gorm:"size:50" json:"department"`
	Position   string     `gorm:"size:50" json:"position"`
	Status     string     `gorm:"size:20;default:'working'" json:"status"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	JoinedAt   *time.Time `gorm:"type:date" json:"joined_at"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Doctor represents doctors table
type Doctor struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	EmpID          string         `gorm:"uniqueIndex;size:20;not null" json:"emp_id"`
	FirstName      string         `gorm:"size:50;not null" json:"first_name"`
	LastName       string         `gorm:"size:50" json:"last_name"`
	Email          string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone          string         `gorm:"size:20" json:"phone"`
	Specialization string         `gorm:"size:100" json:"specialization"`
	Qualification  string         `gorm:"size:100" json:"qualification"`
	IsAvailable    bool           `gorm:"default:true" json:"is_available"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// Staff represents staff table
type Staff struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EmpID       string         `gorm:"uniqueIndex;size:20;not null" json:"emp_id"`
	FirstName   string         `gorm:"size:50;not null" json:"first_name"`
	LastName    string         `gorm:"size:50" json:"last_name"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Designation string         `gorm:"size:50" json:"designation"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Staff) TableName() string {
	return "staff"
}

// KYC statuses (shared by Patient.KYCStatus and KYCDocument.Status)
const (
	KYCStatusPending     = "pending"
	KYCStatusSubmitted   = "submitted"
	KYCStatusUnderReview = "under_review"
	KYCStatusApproved    = "approved"
	KYCStatusRejected    = "rejected"
)

// Patient represents patients table.
// KYCStatus mirrors the latest KYCDocument status on every KYC transition.
type Patient struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FirstName   string         `gorm:"size:50;not null" json:"first_name"`
	LastName    string         `gorm:"size:50" json:"last_name"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Gender      string         `gorm:"size:10" json:"gender"`
	DateOfBirth *time.Time     `gorm:"type:date" json:"date_of_birth"`
	Address     string         `gorm:"type:text" json:"address"`
	BloodGroup  string         `gorm:"size:5" json:"blood_group"`
	KYCStatus   string         `gorm:"size:20;default:'pending'" json:"kyc_status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all portal tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&PortalUser{},
		&RefreshToken{},
		// Personnel & patients
		&Employee{},
		&Doctor{},
		&Staff{},
		&Patient{},
		// Clinic operations
		&Appointment{},
		&Attendance{},
		&Task{},
		&KYCDocument{},
		&ChatMessage{},
	)
}
