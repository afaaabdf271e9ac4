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

// Patient service errors
var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientEmailExists = errors.New("patient email already exists")
)

// PatientService handles patient record management
type PatientService struct {
	patientRepo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// CreatePatientInput represents patient intake input
type CreatePatientInput struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address"`
	BloodGroup  string     `json:"blood_group"`
}

// UpdatePatientInput represents a partial patient patch
type UpdatePatientInput struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	BloodGroup *string `json:"blood_group"`
}

// ListPatientsInput represents list patients input
type ListPatientsInput struct {
	Page      int
	Limit     int
	Search    string
	KYCStatus string
}

// Create registers a new patient; KYC starts in pending
func (s *PatientService) Create(ctx context.Context, input *CreatePatientInput) (*models.Patient, error) {
	exists, err := s.patientRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPatientEmailExists
	}

	patient := &models.Patient{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		Address:     input.Address,
		BloodGroup:  input.BloodGroup,
		KYCStatus:   models.KYCStatusPending,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Printf("✅ Patient registered: %s (%s)", patient.FullName(), patient.Email)
	return patient, nil
}

// GetByID gets a patient by ID
func (s *PatientService) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// List lists patients with filters and pagination
func (s *PatientService) List(ctx context.Context, input *ListPatientsInput) ([]*models.Patient, int64, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	filter := repositories.PatientFilter{
		Search:    input.Search,
		KYCStatus: input.KYCStatus,
	}
	return s.patientRepo.List(ctx, filter, p.Offset, p.Limit)
}

// Update applies a partial patch to a patient
func (s *PatientService) Update(ctx context.Context, id uint, input *UpdatePatientInput) (*models.Patient, error) {
	patient, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = *input.BloodGroup
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}
