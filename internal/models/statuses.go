package models

type UserStatus string
type UserRole string
type DocumentStatus string
type DocumentType string
type DocumentDecision string

const (
	// Account lifecycle. Status only moves forward except for suspension,
	// which is an explicit admin action.
	UserStatusProvisional         UserStatus = "provisional"
	UserStatusVerificationPending UserStatus = "verification_pending"
	UserStatusVerified            UserStatus = "verified"
	UserStatusSuspended           UserStatus = "suspended"

	UserRoleCompany    UserRole = "company"
	UserRoleInfluencer UserRole = "influencer"
	UserRoleAdmin      UserRole = "admin"

	// Per-document review state. Pending rows move to approved or rejected
	// exactly once; rejected rows are never mutated back.
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"

	DocumentTypeBusinessRegistration DocumentType = "business_registration"
	DocumentTypeIDDocument           DocumentType = "id_document"
	DocumentTypeInvoiceDocument      DocumentType = "invoice_document"

	DecisionApproved DocumentDecision = "approved"
	DecisionRejected DocumentDecision = "rejected"
)

// AllowedDocumentTypes lists every type an account may submit.
var AllowedDocumentTypes = []DocumentType{
	DocumentTypeBusinessRegistration,
	DocumentTypeIDDocument,
	DocumentTypeInvoiceDocument,
}

// RequiredDocumentTypes maps a role to the document types that must each have
// at least one approved row before the account counts as documents-approved.
// Types submitted beyond this set are reviewed but not required.
var RequiredDocumentTypes = map[UserRole][]DocumentType{
	UserRoleCompany:    {DocumentTypeBusinessRegistration},
	UserRoleInfluencer: {DocumentTypeIDDocument},
}

func IsAllowedDocumentType(t DocumentType) bool {
	for _, allowed := range AllowedDocumentTypes {
		if t == allowed {
			return true
		}
	}
	return false
}
