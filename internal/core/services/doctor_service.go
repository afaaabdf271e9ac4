package services

import (
	"context"
	"errors"
	"log"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"
	"clinicare-portal/internal/pkg/empid"
	"clinicare-portal/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Doctor service errors
var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorEmailExists = errors.New("doctor email already exists")
)

// DoctorService handles doctor record management
type DoctorService struct {
	doctorRepo repositories.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(doctorRepo repositories.DoctorRepository) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo}
}

// CreateDoctorInput represents create doctor input
type CreateDoctorInput struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
}

// UpdateDoctorInput represents a partial doctor patch
type UpdateDoctorInput struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	Qualification  *string `json:"qualification"`
}

// ListDoctorsInput represents list doctors input
type ListDoctorsInput struct {
	Page           int
	Limit          int
	Search         string
	Specialization string
	Available      *bool
}

// Create creates a new doctor with a generated emp id
func (s *DoctorService) Create(ctx context.Context, input *CreateDoctorInput) (*models.Doctor, error) {
	exists, err := s.doctorRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDoctorEmailExists
	}

	last, err := s.doctorRepo.LastEmpID(ctx, empid.PrefixDoctor)
	if err != nil {
		return nil, err
	}
	nextID, err := empid.Next(empid.PrefixDoctor, last)
	if err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		EmpID:          nextID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Specialization: input.Specialization,
		Qualification:  input.Qualification,
		IsAvailable:    true,
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	log.Printf("✅ Doctor created: %s (%s)", doctor.EmpID, doctor.Email)
	return doctor, nil
}

// GetByID gets a doctor by ID
func (s *DoctorService) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// List lists doctors with filters and pagination
func (s *DoctorService) List(ctx context.Context, input *ListDoctorsInput) ([]*models.Doctor, int64, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	filter := repositories.DoctorFilter{
		Search:         input.Search,
		Specialization: input.Specialization,
		Available:      input.Available,
	}
	return s.doctorRepo.List(ctx, filter, p.Offset, p.Limit)
}

// Update applies a partial patch to a doctor
func (s *DoctorService) Update(ctx context.Context, id uint, input *UpdateDoctorInput) (*models.Doctor, error) {
	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		doctor.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		doctor.LastName = *input.LastName
	}
	if input.Phone != nil {
		doctor.Phone = *input.Phone
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}
	if input.Qualification != nil {
		doctor.Qualification = *input.Qualification
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// SetAvailability toggles whether the doctor accepts appointments
func (s *DoctorService) SetAvailability(ctx context.Context, id uint, available bool) (*models.Doctor, error) {
	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.IsAvailable = available
	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	log.Printf("✅ Doctor %s availability set to %t", doctor.EmpID, available)
	return doctor, nil
}
