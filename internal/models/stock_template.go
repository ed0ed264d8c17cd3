package models

import "time"

// TemplateItem: one counted item of a section template. Par level is kept as
// free text, it is a human reference and never enforced numerically.
type TemplateItem struct {
	Name     string `json:"name"`
	ParLevel string `json:"par_level"`
}

// SectionStockTemplate: per kitchen-section count definition. Items, storage
// locations and prep tasks are stored as JSONB payloads.
type SectionStockTemplate struct {
	ID           uint         `gorm:"primaryKey"`
	OrgID        uint         `gorm:"index;not null"`
	Organization Organization `gorm:"foreignKey:OrgID"`
	Name         string       `gorm:"size:100;not null"` // section name (e.g. "Larder", "Grill")
	Items        string       `gorm:"type:jsonb"`        // [{"name","par_level"}]
	Locations    string       `gorm:"type:jsonb"`        // ["Walk-in","Dry store",...]
	PrepTasks    string       `gorm:"type:jsonb"`        // ["Dice onions",...]
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
