package models

import (
	"strings"
	"time"
)

// Role is one of the three closed user roles
type Role string

const (
	RoleStudent      Role = "student"
	RoleRecruitAdmin Role = "recruitment_admin"
	RoleSystemAdmin  Role = "system_admin"
)

// ParseRole accepts the canonical role names case-insensitively and rejects anything else.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleRecruitAdmin:
		return RoleRecruitAdmin, true
	case RoleSystemAdmin:
		return RoleSystemAdmin, true
	}
	return "", false
}

// User defines the user model based on the 'users' table.
// Role is kept as stored: rows written before the role enumeration existed may hold legacy values.
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Username     string    `json:"username" db:"username" example:"zhangsan"`
	PasswordHash string    `json:"-" db:"password"`
	Role         string    `json:"role" db:"role" example:"student"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
