package models

import "gorm.io/gorm"

// Fixed role set seeded at bootstrap. Roles are reference data; the API
// never creates or mutates them.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleSubAdmin   = "SUB_ADMIN"
	RoleLeader     = "LEADER"
	RoleMember     = "MEMBER"
)

type Role struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string `json:"description"`
	Users       []User `gorm:"many2many:user_roles;" json:"-"`
}
