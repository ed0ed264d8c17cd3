package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleOrgAdmin   UserRole = "org_admin"
	RoleStaff      UserRole = "staff"
)

type User struct {
	ID           uint          `gorm:"primaryKey"`
	OrgID        *uint
	Organization *Organization `gorm:"foreignKey:OrgID"`
	Name         string        `gorm:"size:100;not null"`
	Email        string        `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string        `gorm:"size:255;not null"`
	Role         UserRole      `gorm:"size:20;not null"`
	Active       bool          `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
