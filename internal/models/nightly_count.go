package models

import "time"

type CountStatus string

const (
	CountStatusDraft     CountStatus = "draft"
	CountStatusCompleted CountStatus = "completed"
)

// PrepTaskState: one prep checklist entry of a nightly count. Rebuilt fresh
// from the template every day; prep never carries forward.
type PrepTaskState struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// NightlyStockCount: one count for a template on a date. At most one row per
// (template, date); saves upsert on that key.
type NightlyStockCount struct {
	ID            uint                 `gorm:"primaryKey"`
	OrgID         uint                 `gorm:"index;not null"`
	Organization  Organization         `gorm:"foreignKey:OrgID"`
	TemplateID    uint                 `gorm:"not null;uniqueIndex:idx_counts_template_date"`
	Template      SectionStockTemplate `gorm:"foreignKey:TemplateID"`
	Date          time.Time            `gorm:"not null;uniqueIndex:idx_counts_template_date"`
	StockData     string               `gorm:"type:jsonb"` // item -> location -> counted value
	PrepChecklist string               `gorm:"type:jsonb"` // [{"name","done"}]
	Notes         string               `gorm:"size:2000"`
	Status        CountStatus          `gorm:"size:20;not null;default:draft"`
	CountedBy     uint
	CountedByName string               `gorm:"size:100"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
