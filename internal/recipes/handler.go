package recipes

import (
	"encoding/json"
	"fmt"
	"strings"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RecipePayload struct {
	Name         string                    `json:"name"`
	Category     string                    `json:"category"`
	PortionCount int                       `json:"portion_count"`
	Ingredients  []models.RecipeIngredient `json:"ingredients"`
	MethodSteps  []models.MethodStep       `json:"method_steps"`
	OrgID        *uint                     `json:"org_id"` // super_admin only
}

type RecipeResponse struct {
	ID           uint                      `json:"id"`
	OrgID        uint                      `json:"org_id"`
	Name         string                    `json:"name"`
	Category     string                    `json:"category"`
	PortionCount int                       `json:"portion_count"`
	Ingredients  []models.RecipeIngredient `json:"ingredients"`
	MethodSteps  []models.MethodStep       `json:"method_steps"`
	Costing      Costing                   `json:"costing"`
	CreatedAt    string                    `json:"created_at"`
	UpdatedAt    string                    `json:"updated_at"`
}

func validateRecipePayload(body *RecipePayload) error {
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}
	if body.PortionCount < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "Portion count must be at least 1")
	}
	for i := range body.Ingredients {
		body.Ingredients[i].Name = strings.TrimSpace(body.Ingredients[i].Name)
		if body.Ingredients[i].Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ingredient name cannot be empty")
		}
		if body.Ingredients[i].Quantity < 0 || body.Ingredients[i].UnitCost < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ingredient quantity and unit cost cannot be negative")
		}
	}
	for i := range body.MethodSteps {
		body.MethodSteps[i].Text = strings.TrimSpace(body.MethodSteps[i].Text)
		if body.MethodSteps[i].Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Method step text cannot be empty")
		}
	}
	return nil
}

func toRecipeResponse(recipe models.Recipe) (RecipeResponse, error) {
	resp := RecipeResponse{
		ID:           recipe.ID,
		OrgID:        recipe.OrgID,
		Name:         recipe.Name,
		Category:     recipe.Category,
		PortionCount: recipe.PortionCount,
		Ingredients:  []models.RecipeIngredient{},
		MethodSteps:  []models.MethodStep{},
		CreatedAt:    recipe.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    recipe.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if recipe.Ingredients != "" {
		if err := json.Unmarshal([]byte(recipe.Ingredients), &resp.Ingredients); err != nil {
			return resp, fmt.Errorf("could not decode ingredients: %w", err)
		}
	}
	if recipe.MethodSteps != "" {
		if err := json.Unmarshal([]byte(recipe.MethodSteps), &resp.MethodSteps); err != nil {
			return resp, fmt.Errorf("could not decode method steps: %w", err)
		}
	}

	resp.Costing = Cost(resp.Ingredients, recipe.PortionCount)
	return resp, nil
}

// POST /api/recipes
func CreateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecipePayload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validateRecipePayload(&body); err != nil {
			return err
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		ingredients, _ := json.Marshal(body.Ingredients)
		steps, _ := json.Marshal(body.MethodSteps)

		recipe := models.Recipe{
			OrgID:        orgID,
			Name:         body.Name,
			Category:     strings.TrimSpace(body.Category),
			PortionCount: body.PortionCount,
			Ingredients:  string(ingredients),
			MethodSteps:  string(steps),
		}

		if err := database.DB.Create(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create recipe")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "recipe",
				EntityID:    recipe.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Recipe created: %s", recipe.Name),
				Before:      nil,
				After:       recipe,
			})
		}

		resp, err := toRecipeResponse(recipe)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read recipe back")
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/recipes?category=Sauces
func ListRecipesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("org_id = ?", orgID)
		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		var recipeRows []models.Recipe
		if err := dbq.Order("name ASC").Find(&recipeRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list recipes")
		}

		resp := make([]RecipeResponse, 0, len(recipeRows))
		for _, recipe := range recipeRows {
			r, err := toRecipeResponse(recipe)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not decode recipe")
			}
			resp = append(resp, r)
		}

		return c.JSON(resp)
	}
}

// GET /api/recipes/:id
func GetRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recipe models.Recipe
		if err := database.DB.First(&recipe, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Recipe not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && recipe.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Recipe belongs to another organization")
		}

		resp, err := toRecipeResponse(recipe)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode recipe")
		}
		return c.JSON(resp)
	}
}

// PUT /api/recipes/:id
func UpdateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recipe models.Recipe
		if err := database.DB.First(&recipe, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Recipe not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && recipe.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Recipe belongs to another organization")
		}

		var body RecipePayload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validateRecipePayload(&body); err != nil {
			return err
		}

		before := recipe

		ingredients, _ := json.Marshal(body.Ingredients)
		steps, _ := json.Marshal(body.MethodSteps)

		recipe.Name = body.Name
		recipe.Category = strings.TrimSpace(body.Category)
		recipe.PortionCount = body.PortionCount
		recipe.Ingredients = string(ingredients)
		recipe.MethodSteps = string(steps)

		if err := database.DB.Save(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update recipe")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &recipe.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "recipe",
				EntityID:    recipe.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Recipe updated: %s", recipe.Name),
				Before:      before,
				After:       recipe,
			})
		}

		resp, err := toRecipeResponse(recipe)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode recipe")
		}
		return c.JSON(resp)
	}
}

// DELETE /api/recipes/:id
func DeleteRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recipe models.Recipe
		if err := database.DB.First(&recipe, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Recipe not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && recipe.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Recipe belongs to another organization")
		}

		if err := database.DB.Delete(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete recipe")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &recipe.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "recipe",
				EntityID:    recipe.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Recipe deleted: %s", recipe.Name),
				Before:      recipe,
				After:       nil,
			})
		}

		return c.JSON(fiber.Map{"message": "Recipe deleted"})
	}
}
