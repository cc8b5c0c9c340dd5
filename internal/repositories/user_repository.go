package repositories

import (
	"errors"
	"time"

	"collabra_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository persists users. Every method receives the *gorm.DB to run
// against, which may be the shared pool or a transaction.
type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error

	// MarkEmailVerified sets email_verified_at once; repeated calls are
	// no-ops. AdvanceStatus moves status forward only from the expected
	// current value, so concurrent or repeated transitions cannot regress it.
	MarkEmailVerified(db *gorm.DB, userID string, at time.Time) error
	AdvanceStatus(db *gorm.DB, userID string, from, to models.UserStatus) error

	UpdatePasswordHash(db *gorm.DB, userID, hash string) error
	FindByRole(db *gorm.DB, role models.UserRole, limit, offset int) ([]models.User, error)
	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	// Uniqueness is enforced by the email index inside the insert itself, not
	// by a prior read, so two concurrent registrations cannot both succeed.
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("CompanyProfile").Preload("InfluencerProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("CompanyProfile").Preload("InfluencerProfile").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) MarkEmailVerified(db *gorm.DB, userID string, at time.Time) error {
	return db.Model(&models.User{}).
		Where("id = ? AND email_verified_at IS NULL", userID).
		Updates(map[string]interface{}{
			"email_verified_at": at,
			"updated_at":        time.Now(),
		}).Error
}

func (r *userRepository) AdvanceStatus(db *gorm.DB, userID string, from, to models.UserStatus) error {
	return db.Model(&models.User{}).
		Where("id = ? AND status = ?", userID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		}).Error
}

func (r *userRepository) UpdatePasswordHash(db *gorm.DB, userID, hash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindByRole(db *gorm.DB, role models.UserRole, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := db.Where("role = ?", role).Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *userRepository) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
