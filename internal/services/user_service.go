package services

import (
	"collabra_backend/internal/logger"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService covers the administrator-driven account transitions: granting
// verified status, suspension and reactivation. Email verification and
// document review advance their own sub-states; this is the final gate.
type UserService interface {
	Get(db *gorm.DB, userID string) (*models.User, error)
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) (*models.User, error) {
	switch status {
	case models.UserStatusProvisional, models.UserStatusVerificationPending,
		models.UserStatusVerified, models.UserStatusSuspended:
	default:
		return nil, apperrors.ErrInvalidStatus("users", "Unknown user status")
	}

	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user status updated", "user_id", userID, "status", status)
	return s.Get(db, userID)
}
