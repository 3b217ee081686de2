package models

import "gorm.io/gorm"

// Profile is one-to-one with User. Its presence doubles as the "has
// completed first login" signal: login reports isNewUser when no profile
// exists yet.
type Profile struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	PhoneNumber string `gorm:"size:20" json:"phoneNumber"`
	Email       string `gorm:"size:191" json:"email"`
	Industry    string `json:"industry"`
	Tier        string `json:"tier"`
	Company     string `json:"company"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `gorm:"size:16" json:"zip"`
	Country     string `json:"country"`
	Website     string `json:"website"`
	Remarks     string `json:"remarks"`
}
