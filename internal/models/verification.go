package models

import "time"

// EmailVerificationToken is a single-use, expiring proof-of-ownership token.
// Several rows may exist per user over time; at most one unconsumed, unexpired
// row is valid at any instant because issuing a new token marks prior
// unconsumed rows consumed.
type EmailVerificationToken struct {
	BaseModel
	Token      string    `gorm:"not null;uniqueIndex"`
	UserID     string    `gorm:"not null;index"`
	IssuedAt   time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	ConsumedAt *time.Time
}

// Consumed reports whether the token can no longer advance any status.
func (t *EmailVerificationToken) Consumed() bool {
	return t.ConsumedAt != nil
}

func (t *EmailVerificationToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// VerificationDocument records one submitted document and its review outcome.
// A rejected row stays in place for audit history; re-submission of the same
// type creates a new pending row.
type VerificationDocument struct {
	BaseModel
	OwnerID         string         `gorm:"not null;index"`
	DocumentType    DocumentType   `gorm:"type:varchar(40);not null;index"`
	FileRef         string         `gorm:"not null"` // opaque reference into blob storage
	Status          DocumentStatus `gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason string
	ReviewedBy      string
	SubmittedAt     time.Time `gorm:"not null"`
	DecidedAt       *time.Time
}
