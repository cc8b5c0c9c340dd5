package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// CompanyProfile is the role-specific record for company accounts. Exactly one
// exists per company user, created in the same transaction as the user row.
type CompanyProfile struct {
	BaseModel
	UserID        string `gorm:"uniqueIndex;not null"`
	CompanyName   string `gorm:"not null"`
	ContactPerson string
	Phone         string
	Website       string
	City          string
	Industry      string
	Description   string
}

// InfluencerProfile is the role-specific record for influencer accounts.
type InfluencerProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"not null"`
	City        string
	Bio         string
	Categories  datatypes.JSON `gorm:"type:jsonb"` // ["fashion", "gaming"]
	SocialLinks datatypes.JSON `gorm:"type:jsonb"` // {"instagram": "...", "youtube": "..."}
	IsPublic    bool           `gorm:"default:true"`
}

func (p *InfluencerProfile) GetCategories() []string {
	var categories []string
	if len(p.Categories) > 0 {
		_ = json.Unmarshal(p.Categories, &categories)
	}
	return categories
}

func (p *InfluencerProfile) SetCategories(categories []string) {
	data, _ := json.Marshal(categories)
	p.Categories = datatypes.JSON(data)
}

func (p *InfluencerProfile) GetSocialLinks() map[string]string {
	links := make(map[string]string)
	if len(p.SocialLinks) > 0 {
		_ = json.Unmarshal(p.SocialLinks, &links)
	}
	return links
}

func (p *InfluencerProfile) SetSocialLinks(links map[string]string) {
	data, _ := json.Marshal(links)
	p.SocialLinks = datatypes.JSON(data)
}
