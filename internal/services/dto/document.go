package dto

import (
	"time"

	"collabra_backend/internal/models"
)

type DocumentDTO struct {
	ID              string                `json:"id"`
	OwnerID         string                `json:"owner_id"`
	DocumentType    models.DocumentType   `json:"document_type"`
	Status          models.DocumentStatus `json:"status"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time             `json:"submitted_at"`
	DecidedAt       *time.Time            `json:"decided_at,omitempty"`
}

type UploadDocumentResponse struct {
	DocumentID string                `json:"document_id"`
	Status     models.DocumentStatus `json:"status"`
}

type DecideDocumentRequest struct {
	Decision models.DocumentDecision `json:"decision" binding:"required,oneof=approved rejected"`
	Reason   string                  `json:"reason,omitempty"`
}

func NewDocumentDTO(doc *models.VerificationDocument) *DocumentDTO {
	return &DocumentDTO{
		ID:              doc.ID,
		OwnerID:         doc.OwnerID,
		DocumentType:    doc.DocumentType,
		Status:          doc.Status,
		RejectionReason: doc.RejectionReason,
		SubmittedAt:     doc.SubmittedAt,
		DecidedAt:       doc.DecidedAt,
	}
}

func NewDocumentDTOs(docs []models.VerificationDocument) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		out = append(out, *NewDocumentDTO(&docs[i]))
	}
	return out
}
