package models

import "gorm.io/gorm"

// Item is a simple owned entity. Every operation on it is scoped to the
// owning user.
type Item struct {
	gorm.Model
	Name        string `gorm:"size:191;not null" json:"name"`
	Description string `json:"description"`
	UserID      uint   `gorm:"index;not null" json:"userId"`
	User        User   `json:"-"`
}
