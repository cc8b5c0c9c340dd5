package validator

import (
	"collabra_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain-specific rules. Registration failures
// can only come from empty tag names, which would be a programming error.
func registerCustomRules(v *validator.Validate) {
	_ = v.RegisterValidation("document_type", validateDocumentType)
	_ = v.RegisterValidation("user_role", validateUserRole)
}

// document_type accepts the closed set of submittable document types.
func validateDocumentType(fl validator.FieldLevel) bool {
	return models.IsAllowedDocumentType(models.DocumentType(fl.Field().String()))
}

// user_role accepts the two self-registerable roles. Admin accounts are
// seeded, never registered.
func validateUserRole(fl validator.FieldLevel) bool {
	role := models.UserRole(fl.Field().String())
	return role == models.UserRoleCompany || role == models.UserRoleInfluencer
}
