package services

import (
	"fmt"

	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/internal/services/dto"
	"collabra_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// StatusService is the read-side aggregator: it folds the user's status, the
// email-verified flag and the document set into one readiness view.
type StatusService interface {
	Compute(db *gorm.DB, userID string) (*dto.VerificationStatusResponse, error)
}

type statusService struct {
	userRepo     repositories.UserRepository
	documentRepo repositories.DocumentRepository
}

func NewStatusService(
	userRepo repositories.UserRepository,
	documentRepo repositories.DocumentRepository,
) StatusService {
	return &statusService{
		userRepo:     userRepo,
		documentRepo: documentRepo,
	}
}

func (s *statusService) Compute(db *gorm.DB, userID string) (*dto.VerificationStatusResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	docs, err := s.documentRepo.ListByOwner(db, userID, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	emailVerified := user.EmailVerified()
	required := models.RequiredDocumentTypes[user.Role]

	// A type counts as approved when any of its rows is approved; a rejected
	// row never blocks a newer approved one. A required type with no rows at
	// all counts as not approved.
	approvedTypes := make(map[models.DocumentType]bool)
	latestStatus := make(map[models.DocumentType]models.DocumentStatus)
	for i := range docs {
		doc := &docs[i]
		if doc.Status == models.DocumentStatusApproved {
			approvedTypes[doc.DocumentType] = true
		}
		// docs are ordered newest first; keep the first status seen per type.
		if _, seen := latestStatus[doc.DocumentType]; !seen {
			latestStatus[doc.DocumentType] = doc.Status
		}
	}

	documentsApproved := true
	for _, docType := range required {
		if !approvedTypes[docType] {
			documentsApproved = false
			break
		}
	}

	completion := 0
	if emailVerified {
		completion = 50
	}
	if emailVerified && documentsApproved {
		completion = 100
	}

	// Verified status is granted explicitly by an administrator; all the
	// evidence being in order does not flip it by itself.
	fullyVerified := emailVerified && documentsApproved && user.Status == models.UserStatusVerified

	return &dto.VerificationStatusResponse{
		UserID:               user.ID,
		Status:               user.Status,
		EmailVerified:        emailVerified,
		DocumentsApproved:    documentsApproved,
		FullyVerified:        fullyVerified,
		CompletionPercentage: completion,
		NextSteps:            nextSteps(emailVerified, documentsApproved, fullyVerified, required, approvedTypes, latestStatus),
		Documents:            dto.NewDocumentDTOs(docs),
	}, nil
}

func nextSteps(
	emailVerified, documentsApproved, fullyVerified bool,
	required []models.DocumentType,
	approvedTypes map[models.DocumentType]bool,
	latestStatus map[models.DocumentType]models.DocumentStatus,
) []string {
	steps := []string{}

	if !emailVerified {
		steps = append(steps, "Verify your email address")
	}

	if !documentsApproved {
		for _, docType := range required {
			if approvedTypes[docType] {
				continue
			}
			switch latestStatus[docType] {
			case models.DocumentStatusPending:
				steps = append(steps, fmt.Sprintf("Wait for review of your %s document", docType))
			case models.DocumentStatusRejected:
				steps = append(steps, fmt.Sprintf("Re-submit your %s document", docType))
			default:
				steps = append(steps, fmt.Sprintf("Submit your %s document", docType))
			}
		}
	}

	if emailVerified && documentsApproved && !fullyVerified {
		steps = append(steps, "Wait for final account verification")
	}
	if fullyVerified {
		steps = append(steps, "Your account is fully verified")
	}

	return steps
}
