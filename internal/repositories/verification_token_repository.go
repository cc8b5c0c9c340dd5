package repositories

import (
	"errors"
	"time"

	"collabra_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationTokenNotFound = errors.New("verification token not found")

// VerificationTokenRepository persists email verification tokens.
type VerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.EmailVerificationToken) error
	FindByToken(db *gorm.DB, tokenString string) (*models.EmailVerificationToken, error)

	// Consume sets consumed_at on an unconsumed token in one conditional
	// update and reports whether this call won. Two concurrent verifications
	// of the same token see exactly one true.
	Consume(db *gorm.DB, tokenString string, at time.Time) (bool, error)

	// SupersedeForUser marks every outstanding unconsumed token of the user
	// consumed-without-effect, so only the newest issued token can verify.
	SupersedeForUser(db *gorm.DB, userID string, at time.Time) error

	DeleteExpired(db *gorm.DB, before time.Time) (int64, error)
}

type verificationTokenRepository struct{}

func NewVerificationTokenRepository() VerificationTokenRepository {
	return &verificationTokenRepository{}
}

func (r *verificationTokenRepository) Create(db *gorm.DB, token *models.EmailVerificationToken) error {
	return db.Create(token).Error
}

func (r *verificationTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.EmailVerificationToken, error) {
	var token models.EmailVerificationToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *verificationTokenRepository) Consume(db *gorm.DB, tokenString string, at time.Time) (bool, error) {
	result := db.Model(&models.EmailVerificationToken{}).
		Where("token = ? AND consumed_at IS NULL", tokenString).
		Updates(map[string]interface{}{
			"consumed_at": at,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *verificationTokenRepository) SupersedeForUser(db *gorm.DB, userID string, at time.Time) error {
	return db.Model(&models.EmailVerificationToken{}).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Updates(map[string]interface{}{
			"consumed_at": at,
			"updated_at":  time.Now(),
		}).Error
}

func (r *verificationTokenRepository) DeleteExpired(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("expires_at < ?", before).Delete(&models.EmailVerificationToken{})
	return result.RowsAffected, result.Error
}
