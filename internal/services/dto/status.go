package dto

import "collabra_backend/internal/models"

// VerificationStatusResponse is the composite readiness view computed by the
// status service.
type VerificationStatusResponse struct {
	UserID               string            `json:"user_id"`
	Status               models.UserStatus `json:"status"`
	EmailVerified        bool              `json:"email_verified"`
	DocumentsApproved    bool              `json:"documents_approved"`
	FullyVerified        bool              `json:"fully_verified"`
	CompletionPercentage int               `json:"completion_percentage"`
	NextSteps            []string          `json:"next_steps"`
	Documents            []DocumentDTO     `json:"documents"`
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=provisional verification_pending verified suspended"`
}
