package app

import (
	"sync"

	"collabra_backend/internal/email"
)

// MockEmailProvider records outbound messages instead of delivering them.
// Used in tests and in local development when SMTP is not configured.
type MockEmailProvider struct {
	mu sync.Mutex

	Sent          []*email.Email
	Verifications []MockVerification
	Decisions     []MockDecision
}

type MockVerification struct {
	To    string
	Token string
}

type MockDecision struct {
	To           string
	DocumentType string
	Approved     bool
	Reason       string
}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *MockEmailProvider) SendVerification(to string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Verifications = append(m.Verifications, MockVerification{To: to, Token: token})
	return nil
}

func (m *MockEmailProvider) SendDocumentDecision(to string, documentType string, approved bool, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decisions = append(m.Decisions, MockDecision{
		To:           to,
		DocumentType: documentType,
		Approved:     approved,
		Reason:       reason,
	})
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }

// LastVerification returns the most recent verification message, or nil.
func (m *MockEmailProvider) LastVerification() *MockVerification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Verifications) == 0 {
		return nil
	}
	v := m.Verifications[len(m.Verifications)-1]
	return &v
}
