package model

import "time"

type UserRole string

const (
	RoleUser       UserRole = "USER"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         UserRole
	Level        int
	TotalXP      int
	ProfileImage *string
	CreatedAt    time.Time
}
