package email

// Provider is the outbound email collaborator. Delivery is fire-and-forget
// from the caller's point of view; a failing provider never rolls back the
// database write that preceded it.
type Provider interface {
	// Send delivers a fully built message.
	Send(email *Email) error

	// SendVerification delivers the email-ownership verification link.
	SendVerification(to string, token string) error

	// SendDocumentDecision notifies the owner that a document was reviewed.
	SendDocumentDecision(to string, documentType string, approved bool, reason string) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}
