package repositories

import (
	"context"
	"errors"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// doctorRepository implements DoctorRepository interface
type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

// Create creates a new doctor
func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

// GetByID gets a doctor by ID
func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Update updates a doctor
func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

// List lists doctors with filters and pagination
func (r *doctorRepository) List(ctx context.Context, filter DoctorFilter, offset, limit int) ([]*models.Doctor, int64, error) {
	var doctors []*models.Doctor
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Doctor{})

	if filter.Specialization != "" {
		query = query.Where("specialization = ?", filter.Specialization)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR specialization LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&doctors).Error; err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}

// ExistsByEmail checks if email exists
func (r *doctorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// LastEmpID returns the lexicographically last emp_id under the prefix
func (r *doctorRepository) LastEmpID(ctx context.Context, prefix string) (string, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).
		Where("emp_id LIKE ?", prefix+"%").
		Order("emp_id DESC").
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return doctor.EmpID, nil
}
