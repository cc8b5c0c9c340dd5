package services

import (
	"strings"
	"time"

	"collabra_backend/internal/email"
	"collabra_backend/internal/logger"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DocumentService records document submissions and applies administrator
// decisions. Each row moves pending -> approved|rejected exactly once;
// re-submission after a rejection creates a new independent row.
type DocumentService interface {
	Upload(db *gorm.DB, ownerID string, docType models.DocumentType, fileRef string) (*models.VerificationDocument, error)
	Decide(db *gorm.DB, documentID, adminID string, decision models.DocumentDecision, reason string) (*models.VerificationDocument, error)
	ListForOwner(db *gorm.DB, ownerID string, docType *models.DocumentType) ([]models.VerificationDocument, error)
	ListPending(db *gorm.DB, limit, offset int) ([]models.VerificationDocument, error)
}

type documentService struct {
	documentRepo  repositories.DocumentRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) DocumentService {
	return &documentService{
		documentRepo:  documentRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

func (s *documentService) Upload(db *gorm.DB, ownerID string, docType models.DocumentType, fileRef string) (*models.VerificationDocument, error) {
	if !models.IsAllowedDocumentType(docType) {
		return nil, apperrors.ErrInvalidDocumentType
	}
	if strings.TrimSpace(fileRef) == "" {
		return nil, apperrors.ValidationError(map[string]string{"file": "This field is required"})
	}

	doc := &models.VerificationDocument{
		OwnerID:      ownerID,
		DocumentType: docType,
		FileRef:      fileRef,
		Status:       models.DocumentStatusPending,
		SubmittedAt:  time.Now(),
	}
	if err := s.documentRepo.Create(db, doc); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("document submitted", "document_id", doc.ID, "owner_id", ownerID, "type", docType)
	return doc, nil
}

func (s *documentService) Decide(db *gorm.DB, documentID, adminID string, decision models.DocumentDecision, reason string) (*models.VerificationDocument, error) {
	var status models.DocumentStatus
	switch decision {
	case models.DecisionApproved:
		status = models.DocumentStatusApproved
		reason = ""
	case models.DecisionRejected:
		if strings.TrimSpace(reason) == "" {
			return nil, apperrors.ErrRejectionReasonRequired
		}
		status = models.DocumentStatusRejected
	default:
		return nil, apperrors.ErrInvalidDecision
	}

	// Optimistic concurrency: the update only hits rows still pending. When
	// nothing changed the row is either gone or was decided by someone else.
	won, err := s.documentRepo.Decide(db, documentID, status, adminID, reason, time.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !won {
		if _, err := s.documentRepo.FindByID(db, documentID); err != nil {
			if apperrors.Is(err, repositories.ErrDocumentNotFound) {
				return nil, apperrors.ErrDocumentNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return nil, apperrors.ErrDocumentStale
	}

	doc, err := s.documentRepo.FindByID(db, documentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("document decided",
		"document_id", doc.ID,
		"decision", decision,
		"reviewed_by", adminID,
	)

	s.notifyOwner(db, doc)
	return doc, nil
}

func (s *documentService) ListForOwner(db *gorm.DB, ownerID string, docType *models.DocumentType) ([]models.VerificationDocument, error) {
	if docType != nil && !models.IsAllowedDocumentType(*docType) {
		return nil, apperrors.ErrInvalidDocumentType
	}
	docs, err := s.documentRepo.ListByOwner(db, ownerID, docType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return docs, nil
}

func (s *documentService) ListPending(db *gorm.DB, limit, offset int) ([]models.VerificationDocument, error) {
	docs, err := s.documentRepo.ListPending(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return docs, nil
}

// notifyOwner sends the decision notice. Best effort, after the decision is
// already durable.
func (s *documentService) notifyOwner(db *gorm.DB, doc *models.VerificationDocument) {
	if s.emailProvider == nil {
		return
	}

	owner, err := s.userRepo.FindByID(db, doc.OwnerID)
	if err != nil {
		logger.WithError(err).Warn("could not load document owner for notification", "document_id", doc.ID)
		return
	}

	approved := doc.Status == models.DocumentStatusApproved
	go func(to, docType, reason string) {
		if err := s.emailProvider.SendDocumentDecision(to, docType, approved, reason); err != nil {
			logger.WithError(err).Error("failed to send document decision email")
		}
	}(owner.Email, string(doc.DocumentType), doc.RejectionReason)
}
