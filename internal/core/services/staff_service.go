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

// Staff service errors
var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffEmailExists = errors.New("staff email already exists")
)

// StaffService handles staff record management
type StaffService struct {
	staffRepo repositories.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repositories.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// CreateStaffInput represents create staff input
type CreateStaffInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
}

// UpdateStaffInput represents a partial staff patch
type UpdateStaffInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
}

// Create creates a new staff member with a generated emp id
func (s *StaffService) Create(ctx context.Context, input *CreateStaffInput) (*models.Staff, error) {
	exists, err := s.staffRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrStaffEmailExists
	}

	last, err := s.staffRepo.LastEmpID(ctx, empid.PrefixStaff)
	if err != nil {
		return nil, err
	}
	nextID, err := empid.Next(empid.PrefixStaff, last)
	if err != nil {
		return nil, err
	}

	staff := &models.Staff{
		EmpID:       nextID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Designation: input.Designation,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	log.Printf("✅ Staff created: %s (%s)", staff.EmpID, staff.Email)
	return staff, nil
}

// GetByID gets a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, id uint) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

// List lists staff with optional search and pagination
func (s *StaffService) List(ctx context.Context, search string, page, limit int) ([]*models.Staff, int64, error) {
	p := pagination.Normalize(page, limit)
	return s.staffRepo.List(ctx, search, p.Offset, p.Limit)
}

// Update applies a partial patch to a staff member
func (s *StaffService) Update(ctx context.Context, id uint, input *UpdateStaffInput) (*models.Staff, error) {
	staff, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		staff.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		staff.LastName = *input.LastName
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.Designation != nil {
		staff.Designation = *input.Designation
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}
