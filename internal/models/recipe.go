package models

import "time"

// RecipeIngredient: one costed line of a recipe (JSONB payload).
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"` // kg, g, l, each...
	UnitCost float64 `json:"unit_cost"`
}

// MethodStep: one preparation step. Steps flagged as CCP (critical control
// point) carry a food-safety note shown alongside temperature checks.
type MethodStep struct {
	Text    string `json:"text"`
	IsCCP   bool   `json:"is_ccp"`
	CCPNote string `json:"ccp_note,omitempty"`
}

type Recipe struct {
	ID           uint         `gorm:"primaryKey"`
	OrgID        uint         `gorm:"index;not null"`
	Organization Organization `gorm:"foreignKey:OrgID"`
	Name         string       `gorm:"size:100;not null"`
	Category     string       `gorm:"size:50"`
	PortionCount int          `gorm:"not null;default:1"`
	Ingredients  string       `gorm:"type:jsonb"` // [RecipeIngredient]
	MethodSteps  string       `gorm:"type:jsonb"` // [MethodStep]
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
