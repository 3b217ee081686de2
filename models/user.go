package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:191;not null" json:"email"`
	MobileNumber *string  `gorm:"uniqueIndex;size:20" json:"mobileNumber,omitempty"`
	Password     string   `gorm:"not null" json:"-"` // Never expose the hash
	Name         string   `gorm:"size:191;not null" json:"name"`
	Roles        []Role   `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	Profile      *Profile `json:"profile,omitempty"`
}

// HasRole reports whether the user's loaded role set contains any of the
// given role names. Callers that need a live answer must reload roles first.
func (u *User) HasRole(names ...string) bool {
	for _, r := range u.Roles {
		for _, n := range names {
			if r.Name == n {
				return true
			}
		}
	}
	return false
}

// RoleNames returns the names of the user's loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
