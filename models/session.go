package models

import "gorm.io/gorm"

// Session is the server-side record backing a bearer token. Logout flips
// IsActive instead of deleting the row, so a revoked token can never
// re-authenticate even though it still exists.
type Session struct {
	gorm.Model
	Token    string `gorm:"uniqueIndex;size:512;not null" json:"-"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     User   `json:"-"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}
