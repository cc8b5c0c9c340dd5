package database

import (
	"collabra_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate runs the GORM auto-migration for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CompanyProfile{},
		&models.InfluencerProfile{},
		&models.EmailVerificationToken{},
		&models.RefreshToken{},
		&models.VerificationDocument{},
	)
}
