package models

import "time"

// Organization: one tenant. Every domain row hangs off an OrgID and queries
// are always scoped to it.
type Organization struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User `gorm:"foreignKey:OrgID"`
}
