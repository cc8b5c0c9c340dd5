package models

import "time"

type User struct {
	BaseModel
	Email           string     `gorm:"uniqueIndex;not null"`
	PasswordHash    string     `gorm:"not null"`
	Role            UserRole   `gorm:"type:varchar(20);not null"`
	Status          UserStatus `gorm:"type:varchar(30);default:'provisional'"`
	EmailVerifiedAt *time.Time

	// Relations
	CompanyProfile    *CompanyProfile        `gorm:"foreignKey:UserID"`
	InfluencerProfile *InfluencerProfile     `gorm:"foreignKey:UserID"`
	Documents         []VerificationDocument `gorm:"foreignKey:OwnerID"`
	RefreshTokens     []RefreshToken         `gorm:"foreignKey:UserID"`
}

// EmailVerified reports whether the email ownership checkpoint has been
// cleared.
func (u *User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
