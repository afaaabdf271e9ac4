package config

import (
	"log"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedAdminUser creates the bootstrap ADMIN portal user if none exists.
// Credentials come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func SeedAdminUser(db *gorm.DB, cfg *Config) error {
	log.Println("🌱 Running database seeders...")

	var count int64
	if err := db.Model(&models.PortalUser{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("✅ Admin user already present, skipping seed")
		return nil
	}

	hashed, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.PortalUser{
		Email:           cfg.Seed.AdminEmail,
		Password:        hashed,
		Role:            models.RoleAdmin,
		IsActive:        true,
		CanAccessSystem: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", admin.Email)
	return nil
}
