package recipes

import (
	"math"

	"kitchenops-backend/internal/models"
)

// Costing: derived cost figures of a recipe. Never stored, always recomputed
// from the ingredient lines on read.
type Costing struct {
	TotalCost      float64 `json:"total_cost"`
	CostPerPortion float64 `json:"cost_per_portion"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cost sums quantity * unit cost over all ingredient lines and divides by the
// portion count. A portion count below 1 is treated as 1.
func Cost(ingredients []models.RecipeIngredient, portions int) Costing {
	if portions < 1 {
		portions = 1
	}

	total := 0.0
	for _, ing := range ingredients {
		total += ing.Quantity * ing.UnitCost
	}

	return Costing{
		TotalCost:      round2(total),
		CostPerPortion: round2(total / float64(portions)),
	}
}
