package services

import (
	"context"
	"errors"
	"log"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"
	"clinicare-portal/internal/pkg/empid"
	"clinicare-portal/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Employee service errors
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeEmailExists = errors.New("employee email already exists")
	ErrEmployeeDeleted     = errors.New("employee is already deactivated")
	ErrEmployeeNotDeleted  = errors.New("employee is not deactivated")
)

// EmployeeService handles employee record management
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// CreateEmployeeInput represents create employee input
type CreateEmployeeInput struct {
	FirstName  string     `json:"first_name" validate:"required"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	JoinedAt   *time.Time `json:"joined_at"`
}

// UpdateEmployeeInput represents a partial employee patch
type UpdateEmployeeInput struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

// ListEmployeesInput represents list employees input
type ListEmployeesInput struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	Department string
	IsActive   *bool
}

// Create creates a new employee with a generated sequential emp id
func (s *EmployeeService) Create(ctx context.Context, input *CreateEmployeeInput) (*models.Employee, error) {
	// 1. Reject duplicate natural key before insert
	exists, err := s.employeeRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmployeeEmailExists
	}

	// 2. Generate next emp id
	last, err := s.employeeRepo.LastEmpID(ctx, empid.PrefixEmployee)
	if err != nil {
		return nil, err
	}
	nextID, err := empid.Next(empid.PrefixEmployee, last)
	if err != nil {
		return nil, err
	}

	// 3. Create with default status fields
	employee := &models.Employee{
		EmpID:      nextID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Department: input.Department,
		Position:   input.Position,
		Status:     models.EmployeeStatusWorking,
		IsActive:   true,
		JoinedAt:   input.JoinedAt,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee created: %s (%s)", employee.EmpID, employee.Email)
	return employee, nil
}

// GetByID gets an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// List lists employees with filters and pagination
func (s *EmployeeService) List(ctx context.Context, input *ListEmployeesInput) ([]*models.Employee, int64, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	filter := repositories.EmployeeFilter{
		Search:     input.Search,
		Status:     input.Status,
		Department: input.Department,
		IsActive:   input.IsActive,
	}
	return s.employeeRepo.List(ctx, filter, p.Offset, p.Limit)
}

// Update applies a partial patch to an employee
func (s *EmployeeService) Update(ctx context.Context, id uint, input *UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		employee.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		employee.LastName = *input.LastName
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// SoftDelete deactivates an employee, keeping all history
func (s *EmployeeService) SoftDelete(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrEmployeeDeleted
	}

	now := time.Now()
	employee.IsActive = false
	employee.Status = models.EmployeeStatusNotWorking
	employee.DeletedAt = &now

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	log.Printf("🗑️ Employee deactivated: %s", employee.EmpID)
	return employee, nil
}

// Restore reactivates a soft-deleted employee
func (s *EmployeeService) Restore(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.IsActive {
		return nil, ErrEmployeeNotDeleted
	}

	employee.IsActive = true
	employee.Status = models.EmployeeStatusWorking
	employee.DeletedAt = nil

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee restored: %s", employee.EmpID)
	return employee, nil
}
