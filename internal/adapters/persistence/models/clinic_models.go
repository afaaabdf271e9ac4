package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Appointment Tables
// ============================================================

// Appointment statuses
const (
	AppointmentStatusScheduled   = "scheduled"
	AppointmentStatusConfirmed   = "confirmed"
	AppointmentStatusRescheduled = "rescheduled"
	AppointmentStatusCancelled   = "cancelled"
)

// Appointment represents appointments table.
// Multiple appointments may share a doctor/time slot; overlap detection is
// intentionally not performed.
type Appointment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PatientID uint           `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint           `gorm:"not null;index" json:"doctor_id"`
	Date      time.Time      `gorm:"type:date;not null;index" json:"date"`
	TimeSlot  string         `gorm:"size:10;not null" json:"time_slot"`
	Reason    string         `gorm:"type:text" json:"reason"`
	Status    string         `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ============================================================
// Attendance Tables
// ============================================================

// Attendance statuses derived at check-out from working hours
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusHalfDay = "half_day"
	AttendanceStatusLate    = "late"
)

// Attendance represents attendances table.
// At most one record per employee with check_out_time NULL (the open record);
// the record stays keyed to its check-in timestamp even across midnight.
type Attendance struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EmployeeID       uint       `gorm:"not null;index" json:"employee_id"`
	StaffID          *uint      `gorm:"index" json:"staff_id"`
	CheckInTime      time.Time  `gorm:"not null;index" json:"check_in_time"`
	CheckOutTime     *time.Time `json:"check_out_time"`
	WorkingHours     *float64   `gorm:"type:decimal(5,2)" json:"working_hours"`
	Status           string     `gorm:"size:20;not null;default:'present'" json:"status"`
	CheckInPhoto     *string    `gorm:"size:255" json:"check_in_photo"`
	CheckOutPhoto    *string    `gorm:"size:255" json:"check_out_photo"`
	CheckInLocation  *string    `gorm:"size:255" json:"check_in_location"`
	CheckOutLocation *string    `gorm:"size:255" json:"check_out_location"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Staff    *Staff    `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// IsOpen reports whether the record is still awaiting check-out
func (a *Attendance) IsOpen() bool {
	return a.CheckOutTime == nil
}

// ============================================================
// Task Tables
// ============================================================

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task represents tasks table
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StaffID     uint           `gorm:"not null;index" json:"staff_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	Priority    string         `gorm:"size:10;not null;default:'medium'" json:"priority"`
	DueDate     *time.Time     `gorm:"index" json:"due_date"`
	AssignedBy  *uint          `json:"assigned_by"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Staff *Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

// ============================================================
// KYC Tables
// ============================================================

// KYCDocument represents kyc_documents table.
// At most one live document set per patient (upsert by patient_id).
type KYCDocument struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	PatientID             uint       `gorm:"uniqueIndex;not null" json:"patient_id"`
	Status                string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	IDDocumentURL         string     `gorm:"size:255" json:"id_document_url"`
	AddressDocumentURL    string     `gorm:"size:255" json:"address_document_url"`
	PhotoURL              string     `gorm:"size:255" json:"photo_url"`
	ResubmissionRequested bool       `gorm:"default:false" json:"resubmission_requested"`
	RejectionRemarks      string     `gorm:"type:text" json:"rejection_remarks"`
	ReviewedBy            *uint      `json:"reviewed_by"`
	ReviewedAt            *time.Time `json:"reviewed_at"`
	SubmittedAt           *time.Time `json:"submitted_at"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (KYCDocument) TableName() string {
	return "kyc_documents"
}

// ============================================================
// Chat Tables
// ============================================================

// Chat sender types
const (
	ChatSenderPatient = "patient"
	ChatSenderStaff   = "staff"
)

// Chat message types
const (
	ChatMessageText = "text"
	ChatMessageFile = "file"
)

// ChatMessage represents chat_messages table (append-only)
type ChatMessage struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PatientID   uint       `gorm:"not null;index" json:"patient_id"`
	SenderID    uint       `gorm:"not null" json:"sender_id"`
	SenderType  string     `gorm:"size:10;not null" json:"sender_type"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	MessageType string     `gorm:"size:10;not null;default:'text'" json:"message_type"`
	FileURL     *string    `gorm:"size:255" json:"file_url"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
