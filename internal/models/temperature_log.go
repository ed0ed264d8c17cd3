package models

import "time"

type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarning CheckStatus = "warning"
	StatusFail    CheckStatus = "fail"
	// StatusUnknown: the config references a zone type with no profile.
	// Surfaced instead of silently treating the reading as compliant.
	StatusUnknown CheckStatus = "unknown"
)

// TemperatureLogEntry: one recorded reading. Immutable once saved, there is
// no update path; corrections are new entries.
type TemperatureLogEntry struct {
	ID           uint                `gorm:"primaryKey"`
	OrgID        uint                `gorm:"index;not null"`
	Organization Organization        `gorm:"foreignKey:OrgID"`
	ConfigID     uint                `gorm:"index;not null"`
	Config       CheckLocationConfig `gorm:"foreignKey:ConfigID"`
	Value        float64             `gorm:"not null"`
	Unit         string              `gorm:"size:5;not null;default:C"`
	ZoneType     ZoneType            `gorm:"size:20;not null"` // denormalized from config at save time
	Status       CheckStatus         `gorm:"size:10;not null"`
	Shift        Shift               `gorm:"size:5;not null"`
	Date         time.Time           `gorm:"index;not null"` // check date (00:00 UTC)
	UserID       uint
	UserName     string              `gorm:"size:100"` // recording user (denormalized)
	CreatedAt    time.Time
}
