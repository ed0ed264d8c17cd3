package models

import "time"

type ZoneType string

const (
	ZoneFridge         ZoneType = "fridge"
	ZoneFreezer        ZoneType = "freezer"
	ZoneHotHold        ZoneType = "hot_hold"
	ZoneAmbient        ZoneType = "ambient"
	ZoneDeliveryCold   ZoneType = "delivery_cold"
	ZoneDeliveryFrozen ZoneType = "delivery_frozen"
)

type Shift string

const (
	ShiftAM Shift = "am"
	ShiftPM Shift = "pm"
)

// CheckLocationConfig: a configured temperature check point (fridge, hot hold etc.)
// Never hard-deleted while logs reference it; deactivated via Active flag.
type CheckLocationConfig struct {
	ID           uint         `gorm:"primaryKey"`
	OrgID        uint         `gorm:"index;not null"`
	Organization Organization `gorm:"foreignKey:OrgID"`
	Name         string       `gorm:"size:100;not null"`
	ZoneType     ZoneType     `gorm:"size:20;not null"`
	Shift        Shift        `gorm:"size:5;not null"` // am / pm
	SortOrder    int          `gorm:"not null;default:0"`
	Active       bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
