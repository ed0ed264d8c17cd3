package models

import "time"

// Vendor: a marketplace supplier listed for the organization (produce,
// packaging, equipment...). Managed from the admin portal.
type Vendor struct {
	ID           uint         `gorm:"primaryKey"`
	OrgID        uint         `gorm:"index;not null"`
	Organization Organization `gorm:"foreignKey:OrgID"`
	Name         string       `gorm:"size:100;not null"`
	Category     string       `gorm:"size:50"`
	ContactEmail string       `gorm:"size:100"`
	Phone        string       `gorm:"size:50"`
	Active       bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
