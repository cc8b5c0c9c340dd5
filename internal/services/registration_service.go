package services

import (
	"strings"

	"collabra_backend/internal/auth"
	"collabra_backend/internal/config"
	"collabra_backend/internal/logger"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/internal/services/dto"
	"collabra_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RegistrationService creates accounts. The user row and its role-specific
// profile are written in one transaction; no user ever exists without a
// matching profile.
type RegistrationService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
}

type registrationService struct {
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	verificationSvc EmailVerificationService
}

func NewRegistrationService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	verificationSvc EmailVerificationService,
) RegistrationService {
	return &registrationService{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		verificationSvc: verificationSvc,
	}
}

func (s *registrationService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Role != models.UserRoleCompany && req.Role != models.UserRoleInfluencer {
		return nil, apperrors.ErrInvalidUserRole
	}
	if err := s.validateRoleFields(req); err != nil {
		return nil, err
	}

	cfg := config.GetConfig()
	if err := auth.ValidatePassword(req.Password, cfg.Server.Env); err != nil {
		return nil, apperrors.ErrWeakPassword.WithDetails(err.Error())
	}

	normalizedEmail := NormalizeEmail(req.Email)
	if normalizedEmail == "" {
		return nil, apperrors.ValidationError(map[string]string{"email": "This field is required"})
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        normalizedEmail,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		Status:       models.UserStatusProvisional,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		if err := s.createProfile(tx, user, req); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The account is durable at this point. Token issuance and the email are
	// best effort; the client can request a resend if either fails.
	s.verificationSvc.IssueAndNotify(db, user.ID, user.Email)

	logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return &dto.RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

func (s *registrationService) createProfile(tx *gorm.DB, user *models.User, req *dto.RegisterRequest) error {
	switch user.Role {
	case models.UserRoleCompany:
		profile := &models.CompanyProfile{
			UserID:        user.ID,
			CompanyName:   req.CompanyName,
			ContactPerson: req.ContactPerson,
			Industry:      req.Industry,
			City:          req.City,
		}
		return s.profileRepo.CreateCompanyProfile(tx, profile)
	case models.UserRoleInfluencer:
		profile := &models.InfluencerProfile{
			UserID:      user.ID,
			DisplayName: req.DisplayName,
			City:        req.City,
			IsPublic:    true,
		}
		if len(req.Categories) > 0 {
			profile.SetCategories(req.Categories)
		}
		return s.profileRepo.CreateInfluencerProfile(tx, profile)
	}
	return apperrors.ErrInvalidUserRole
}

func (s *registrationService) validateRoleFields(req *dto.RegisterRequest) error {
	if req.Role == models.UserRoleCompany && strings.TrimSpace(req.CompanyName) == "" {
		return apperrors.ValidationError(map[string]string{
			"company_name": "This field is required for company accounts",
		})
	}
	if req.Role == models.UserRoleInfluencer && strings.TrimSpace(req.DisplayName) == "" {
		return apperrors.ValidationError(map[string]string{
			"display_name": "This field is required for influencer accounts",
		})
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
