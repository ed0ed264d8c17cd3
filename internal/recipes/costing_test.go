package recipes

import (
	"testing"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCostSumsIngredientLines(t *testing.T) {
	got := Cost([]models.RecipeIngredient{
		{Name: "Flour", Quantity: 2, Unit: "kg", UnitCost: 1.20},
		{Name: "Butter", Quantity: 0.5, Unit: "kg", UnitCost: 8.00},
		{Name: "Eggs", Quantity: 6, Unit: "each", UnitCost: 0.35},
	}, 4)

	assert.InDelta(t, 8.50, got.TotalCost, 0.001)
	assert.InDelta(t, 2.13, got.CostPerPortion, 0.001) // 8.50/4 rounded
}

func TestCostEmptyRecipe(t *testing.T) {
	got := Cost(nil, 10)
	assert.Zero(t, got.TotalCost)
	assert.Zero(t, got.CostPerPortion)
}

func TestCostGuardsPortionCount(t *testing.T) {
	lines := []models.RecipeIngredient{{Name: "Stock", Quantity: 3, UnitCost: 2}}

	for _, portions := range []int{0, -5} {
		got := Cost(lines, portions)
		assert.InDelta(t, 6.0, got.CostPerPortion, 0.001)
	}
}

func TestCostRoundsToCents(t *testing.T) {
	got := Cost([]models.RecipeIngredient{
		{Name: "Saffron", Quantity: 0.003, UnitCost: 11.111},
	}, 1)
	assert.InDelta(t, 0.03, got.TotalCost, 0.0001)
}
