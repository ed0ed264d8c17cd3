package stockcount

import (
	"encoding/json"
	"fmt"
	"strings"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TemplatePayload struct {
	Name      string                `json:"name"`
	Items     []models.TemplateItem `json:"items"`
	Locations []string              `json:"locations"`
	PrepTasks []string              `json:"prep_tasks"`
	OrgID     *uint                 `json:"org_id"` // super_admin only
}

type TemplateResponse struct {
	ID        uint                  `json:"id"`
	OrgID     uint                  `json:"org_id"`
	Name      string                `json:"name"`
	Items     []models.TemplateItem `json:"items"`
	Locations []string              `json:"locations"`
	PrepTasks []string              `json:"prep_tasks"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

func toTemplateResponse(tpl models.SectionStockTemplate) (TemplateResponse, error) {
	spec, err := decodeTemplate(tpl)
	if err != nil {
		return TemplateResponse{}, err
	}
	if spec.Items == nil {
		spec.Items = []models.TemplateItem{}
	}
	if spec.Locations == nil {
		spec.Locations = []string{}
	}
	if spec.PrepTasks == nil {
		spec.PrepTasks = []string{}
	}
	return TemplateResponse{
		ID:        tpl.ID,
		OrgID:     tpl.OrgID,
		Name:      tpl.Name,
		Items:     spec.Items,
		Locations: spec.Locations,
		PrepTasks: spec.PrepTasks,
		CreatedAt: tpl.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: tpl.UpdatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func validateTemplatePayload(body *TemplatePayload) error {
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Section name is required")
	}
	seen := make(map[string]bool, len(body.Items))
	for i := range body.Items {
		body.Items[i].Name = strings.TrimSpace(body.Items[i].Name)
		if body.Items[i].Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Item names cannot be empty")
		}
		if seen[body.Items[i].Name] {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Duplicate item: %s", body.Items[i].Name))
		}
		seen[body.Items[i].Name] = true
	}
	for i := range body.Locations {
		body.Locations[i] = strings.TrimSpace(body.Locations[i])
		if body.Locations[i] == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Location names cannot be empty")
		}
	}
	return nil
}

func encodeTemplatePayload(tpl *models.SectionStockTemplate, body TemplatePayload) error {
	items, err := json.Marshal(body.Items)
	if err != nil {
		return err
	}
	locations, err := json.Marshal(body.Locations)
	if err != nil {
		return err
	}
	tasks, err := json.Marshal(body.PrepTasks)
	if err != nil {
		return err
	}
	tpl.Name = body.Name
	tpl.Items = string(items)
	tpl.Locations = string(locations)
	tpl.PrepTasks = string(tasks)
	return nil
}

// POST /api/stock-templates
func CreateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TemplatePayload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validateTemplatePayload(&body); err != nil {
			return err
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		tpl := models.SectionStockTemplate{OrgID: orgID}
		if err := encodeTemplatePayload(&tpl, body); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not encode template")
		}

		if err := database.DB.Create(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create template")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "section_stock_template",
				EntityID:    tpl.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Stock template created: %s", tpl.Name),
				Before:      nil,
				After:       tpl,
			})
		}

		resp, err := toTemplateResponse(tpl)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode template")
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/stock-templates?org_id=1
func ListTemplatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var templates []models.SectionStockTemplate
		if err := database.DB.
			Where("org_id = ?", orgID).
			Order("name ASC").
			Find(&templates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list templates")
		}

		resp := make([]TemplateResponse, 0, len(templates))
		for _, tpl := range templates {
			r, err := toTemplateResponse(tpl)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not decode template")
			}
			resp = append(resp, r)
		}

		return c.JSON(resp)
	}
}

// GET /api/stock-templates/:id
func GetTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tpl models.SectionStockTemplate
		if err := database.DB.First(&tpl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Template not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && tpl.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Template belongs to another organization")
		}

		resp, err := toTemplateResponse(tpl)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode template")
		}
		return c.JSON(resp)
	}
}

// PUT /api/stock-templates/:id
func UpdateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tpl models.SectionStockTemplate
		if err := database.DB.First(&tpl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Template not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && tpl.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Template belongs to another organization")
		}

		var body TemplatePayload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validateTemplatePayload(&body); err != nil {
			return err
		}

		before := tpl
		if err := encodeTemplatePayload(&tpl, body); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not encode template")
		}

		if err := database.DB.Save(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update template")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &tpl.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "section_stock_template",
				EntityID:    tpl.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Stock template updated: %s", tpl.Name),
				Before:      before,
				After:       tpl,
			})
		}

		resp, err := toTemplateResponse(tpl)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode template")
		}
		return c.JSON(resp)
	}
}

// DELETE /api/stock-templates/:id
// Hard delete is refused while counts reference the template.
func DeleteTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tpl models.SectionStockTemplate
		if err := database.DB.First(&tpl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Template not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && tpl.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Template belongs to another organization")
		}

		var countRefs int64
		database.DB.Model(&models.NightlyStockCount{}).
			Where("template_id = ?", tpl.ID).
			Count(&countRefs)
		if countRefs > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Template has saved counts and cannot be deleted")
		}

		if err := database.DB.Delete(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete template")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &tpl.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "section_stock_template",
				EntityID:    tpl.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Stock template deleted: %s", tpl.Name),
				Before:      tpl,
				After:       tpl,
			})
		}

		return c.JSON(fiber.Map{"message": "Template deleted"})
	}
}
