package repositories

import (
	"errors"

	"collabra_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository persists the role-specific profile rows. A user has exactly
// one profile and its type matches the user's role; the one-per-user rule is
// backed by the unique index on user_id.
type ProfileRepository interface {
	CreateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error
	CreateInfluencerProfile(db *gorm.DB, profile *models.InfluencerProfile) error
	FindCompanyProfileByUserID(db *gorm.DB, userID string) (*models.CompanyProfile, error)
	FindInfluencerProfileByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error)
	UpdateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error
	UpdateInfluencerProfile(db *gorm.DB, profile *models.InfluencerProfile) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) CreateInfluencerProfile(db *gorm.DB, profile *models.InfluencerProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindCompanyProfileByUserID(db *gorm.DB, userID string) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindInfluencerProfileByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error {
	result := db.Model(profile).Where("id = ?", profile.ID).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) UpdateInfluencerProfile(db *gorm.DB, profile *models.InfluencerProfile) error {
	result := db.Model(profile).Where("id = ?", profile.ID).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
