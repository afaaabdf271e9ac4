package repositories

import (
	"context"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// portalUserRepository implements PortalUserRepository interface
type portalUserRepository struct {
	db *gorm.DB
}

// NewPortalUserRepository creates a new portal user repository
func NewPortalUserRepository(db *gorm.DB) PortalUserRepository {
	return &portalUserRepository{db: db}
}

// Create creates a new portal user
func (r *portalUserRepository) Create(ctx context.Context, user *models.PortalUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a portal user by ID
func (r *portalUserRepository) GetByID(ctx context.Context, id uint) (*models.PortalUser, error) {
	var user models.PortalUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a portal user by email
func (r *portalUserRepository) GetByEmail(ctx context.Context, email string) (*models.PortalUser, error) {
	var user models.PortalUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a portal user
func (r *portalUserRepository) Update(ctx context.Context, user *models.PortalUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete soft deletes a portal user
func (r *portalUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PortalUser{}, id).Error
}

// List lists portal users with pagination
func (r *portalUserRepository) List(ctx context.Context, offset, limit int) ([]*models.PortalUser, int64, error) {
	var users []*models.PortalUser
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.PortalUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ExistsByEmail checks if email exists
func (r *portalUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PortalUser{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
