package services

import (
	"time"

	"collabra_backend/internal/auth"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/internal/services/dto"
	"collabra_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// AuthService handles sessions for already-registered accounts: login, token
// refresh, logout. Account creation lives in RegistrationService.
type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
}

type authService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	return s.buildSession(db, user)
}

func (s *authService) Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.refreshTokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(db, refreshToken)
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(db, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	// Rotate: the presented token dies with this call.
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildSession(db, user)
}

func (s *authService) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) buildSession(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         s.buildUserDTO(db, user),
	}, nil
}

func (s *authService) createRefreshToken(db *gorm.DB, userID string) (string, error) {
	tokenString, err := generateSecureToken()
	if err != nil {
		return "", err
	}

	token := &models.RefreshToken{
		UserID:    userID,
		Token:     tokenString,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(db, token); err != nil {
		return "", err
	}
	return tokenString, nil
}

// checkUserStatus gates login by account state. Provisional accounts must
// verify their email first; suspended accounts are rejected outright.
func (s *authService) checkUserStatus(user *models.User) error {
	switch user.Status {
	case models.UserStatusSuspended:
		return apperrors.ErrUserSuspended
	case models.UserStatusProvisional:
		if !user.EmailVerified() {
			return apperrors.ErrUserNotVerified
		}
	}
	return nil
}

func (s *authService) buildUserDTO(db *gorm.DB, user *models.User) *dto.UserDTO {
	out := &dto.UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Role:            user.Role,
		Status:          user.Status,
		EmailVerified:   user.EmailVerified(),
		CreatedAt:       user.CreatedAt,
		EmailVerifiedAt: user.EmailVerifiedAt,
	}

	switch user.Role {
	case models.UserRoleCompany:
		if user.CompanyProfile != nil {
			out.Profile = user.CompanyProfile
		} else if profile, err := s.profileRepo.FindCompanyProfileByUserID(db, user.ID); err == nil {
			out.Profile = profile
		}
	case models.UserRoleInfluencer:
		if user.InfluencerProfile != nil {
			out.Profile = user.InfluencerProfile
		} else if profile, err := s.profileRepo.FindInfluencerProfileByUserID(db, user.ID); err == nil {
			out.Profile = profile
		}
	}

	return out
}
