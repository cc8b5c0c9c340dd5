package services

import (
	"time"

	"collabra_backend/internal/config"
	"collabra_backend/internal/email"
	"collabra_backend/internal/logger"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/internal/services/dto"
	"collabra_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// EmailVerificationService owns the token lifecycle: issue, verify, resend.
// Per user the state machine is NO_TOKEN -> TOKEN_ISSUED -> CONSUMED|EXPIRED;
// issuing a new token supersedes whatever was outstanding.
type EmailVerificationService interface {
	// Issue creates a fresh token and invalidates prior unconsumed ones for
	// the user. The returned token is handed to the notifier.
	Issue(db *gorm.DB, userID string) (*models.EmailVerificationToken, error)

	// IssueAndNotify is the best-effort form used after registration commits:
	// failures are logged, never returned.
	IssueAndNotify(db *gorm.DB, userID, emailAddr string)

	// Verify consumes a token exactly once and advances the user to
	// verification_pending.
	Verify(db *gorm.DB, tokenString string) (*dto.VerifyEmailResponse, error)

	// Resend issues a new token for a user whose email is still unverified.
	Resend(db *gorm.DB, userID string) error

	// ResendByEmail is the public entry point. It reports success whether or
	// not the address exists, so it cannot be used to enumerate accounts.
	ResendByEmail(db *gorm.DB, emailAddr string) error
}

type emailVerificationService struct {
	userRepo      repositories.UserRepository
	tokenRepo     repositories.VerificationTokenRepository
	emailProvider email.Provider
}

func NewEmailVerificationService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.VerificationTokenRepository,
	emailProvider email.Provider,
) EmailVerificationService {
	return &emailVerificationService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		emailProvider: emailProvider,
	}
}

func (s *emailVerificationService) Issue(db *gorm.DB, userID string) (*models.EmailVerificationToken, error) {
	tokenString, err := generateSecureToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	ttl := time.Duration(config.GetConfig().Verification.TokenTTL) * time.Hour
	token := &models.EmailVerificationToken{
		Token:     tokenString,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	// Supersession and creation share one transaction so there is never an
	// instant with two valid tokens.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.SupersedeForUser(tx, userID, now); err != nil {
			return err
		}
		return s.tokenRepo.Create(tx, token)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return token, nil
}

func (s *emailVerificationService) IssueAndNotify(db *gorm.DB, userID, emailAddr string) {
	token, err := s.Issue(db, userID)
	if err != nil {
		logger.WithError(err).Error("failed to issue verification token", "user_id", userID)
		return
	}
	s.sendVerificationEmail(emailAddr, token.Token)
}

func (s *emailVerificationService) Verify(db *gorm.DB, tokenString string) (*dto.VerifyEmailResponse, error) {
	var resp *dto.VerifyEmailResponse

	err := db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindByToken(tx, tokenString)
		if err != nil {
			if apperrors.Is(err, repositories.ErrVerificationTokenNotFound) {
				return apperrors.ErrVerificationTokenInvalid
			}
			return apperrors.InternalError(err)
		}

		now := time.Now()
		if token.Consumed() {
			return apperrors.ErrVerificationTokenUsed
		}
		if token.Expired(now) {
			// No mutation: an expired token row stays as it is.
			return apperrors.ErrVerificationTokenExpired
		}

		// Conditional update; losing the race means another request consumed
		// the token between our read and this write.
		won, err := s.tokenRepo.Consume(tx, tokenString, now)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !won {
			return apperrors.ErrVerificationTokenUsed
		}

		if err := s.userRepo.MarkEmailVerified(tx, token.UserID, now); err != nil {
			return apperrors.InternalError(err)
		}
		// No-op when the user is already past provisional.
		if err := s.userRepo.AdvanceStatus(tx, token.UserID,
			models.UserStatusProvisional, models.UserStatusVerificationPending); err != nil {
			return apperrors.InternalError(err)
		}

		user, err := s.userRepo.FindByID(tx, token.UserID)
		if err != nil {
			return apperrors.InternalError(err)
		}

		resp = &dto.VerifyEmailResponse{UserID: user.ID, Email: user.Email}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("email verified", "user_id", resp.UserID)
	return resp, nil
}

func (s *emailVerificationService) Resend(db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.EmailVerified() {
		return apperrors.ErrEmailAlreadyVerified
	}

	token, err := s.Issue(db, user.ID)
	if err != nil {
		return err
	}
	s.sendVerificationEmail(user.Email, token.Token)
	return nil
}

func (s *emailVerificationService) ResendByEmail(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, NormalizeEmail(emailAddr))
	if err != nil {
		// Unknown address or already verified: same silent success either
		// way, no enumeration signal.
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.WithError(err).Error("resend lookup failed")
		}
		return nil
	}
	if user.EmailVerified() {
		return nil
	}

	token, err := s.Issue(db, user.ID)
	if err != nil {
		logger.WithError(err).Error("failed to reissue verification token", "user_id", user.ID)
		return nil
	}
	s.sendVerificationEmail(user.Email, token.Token)
	return nil
}

func (s *emailVerificationService) sendVerificationEmail(emailAddr, token string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		if err := s.emailProvider.SendVerification(emailAddr, token); err != nil {
			logger.WithError(err).Error("failed to send verification email")
		}
	}()
}
