package repositories

import (
	"errors"
	"time"

	"collabra_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository persists verification documents and their review state.
type DocumentRepository interface {
	Create(db *gorm.DB, doc *models.VerificationDocument) error
	FindByID(db *gorm.DB, id string) (*models.VerificationDocument, error)
	ListByOwner(db *gorm.DB, ownerID string, docType *models.DocumentType) ([]models.VerificationDocument, error)
	ListPending(db *gorm.DB, limit, offset int) ([]models.VerificationDocument, error)

	// Decide applies a review outcome with a conditional update on the
	// pending status and reports whether any row changed. When it returns
	// false the row was either missing or already decided; the caller
	// distinguishes the two with FindByID.
	Decide(db *gorm.DB, id string, status models.DocumentStatus, reviewedBy, reason string, at time.Time) (bool, error)
}

type documentRepository struct{}

func NewDocumentRepository() DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) Create(db *gorm.DB, doc *models.VerificationDocument) error {
	return db.Create(doc).Error
}

func (r *documentRepository) FindByID(db *gorm.DB, id string) (*models.VerificationDocument, error) {
	var doc models.VerificationDocument
	if err := db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByOwner(db *gorm.DB, ownerID string, docType *models.DocumentType) ([]models.VerificationDocument, error) {
	query := db.Where("owner_id = ?", ownerID)
	if docType != nil {
		query = query.Where("document_type = ?", *docType)
	}

	var docs []models.VerificationDocument
	err := query.Order("submitted_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) ListPending(db *gorm.DB, limit, offset int) ([]models.VerificationDocument, error) {
	var docs []models.VerificationDocument
	err := db.Where("status = ?", models.DocumentStatusPending).
		Order("submitted_at ASC").
		Limit(limit).Offset(offset).
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Decide(db *gorm.DB, id string, status models.DocumentStatus, reviewedBy, reason string, at time.Time) (bool, error) {
	result := db.Model(&models.VerificationDocument{}).
		Where("id = ? AND status = ?", id, models.DocumentStatusPending).
		Updates(map[string]interface{}{
			"status":           status,
			"reviewed_by":      reviewedBy,
			"rejection_reason": reason,
			"decided_at":       at,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
