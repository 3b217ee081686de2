package models

import "gorm.io/gorm"

type Chapter struct {
	gorm.Model
	Title           string `gorm:"size:191;not null" json:"title"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	IsActive        bool   `gorm:"not null;default:true" json:"isActive"`
	UserID          *uint  `gorm:"index" json:"userId,omitempty"` // owning user
	User            *User  `json:"user,omitempty"`
	PresidentID     *uint  `json:"presidentId,omitempty"`
	President       *User  `gorm:"foreignKey:PresidentID" json:"president,omitempty"`
	VicePresidentID *uint  `json:"vicePresidentId,omitempty"`
	VicePresident   *User  `gorm:"foreignKey:VicePresidentID" json:"vicePresident,omitempty"`
	StateID         *uint  `json:"stateId,omitempty"`
	State           *State `json:"state,omitempty"`
	CityID          *uint  `json:"cityId,omitempty"`
	City            *City  `json:"city,omitempty"`
}

// Membership role tags. Distinct from the global Role set: they describe a
// user's standing inside one chapter.
const (
	ChapterRoleLeader = "LEADER"
	ChapterRoleMember = "MEMBER"
)

// ChapterMember links a user to a chapter. Membership records are
// append-only.
type ChapterMember struct {
	gorm.Model
	UserID    uint    `gorm:"index;not null" json:"userId"`
	User      User    `json:"-"`
	ChapterID uint    `gorm:"index;not null" json:"chapterId"`
	Chapter   Chapter `json:"-"`
	Role      string  `gorm:"size:32;not null" json:"role"`
}
