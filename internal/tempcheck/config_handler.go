package tempcheck

import (
	"fmt"
	"strings"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CheckConfigResponse struct {
	ID        uint   `json:"id"`
	OrgID     uint   `json:"org_id"`
	Name      string `json:"name"`
	ZoneType  string `json:"zone_type"`
	ZoneLabel string `json:"zone_label"`
	Shift     string `json:"shift"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type CreateCheckConfigRequest struct {
	Name      string `json:"name"`
	ZoneType  string `json:"zone_type"`
	Shift     string `json:"shift"`
	SortOrder int    `json:"sort_order"`
	OrgID     *uint  `json:"org_id"` // super_admin only
}

type UpdateCheckConfigRequest struct {
	Name      *string `json:"name"`
	ZoneType  *string `json:"zone_type"`
	Shift     *string `json:"shift"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

// defaultCheckLocations: seeded once per organization per shift when no
// configs exist yet.
var defaultCheckLocations = []struct {
	Name     string
	ZoneType models.ZoneType
}{
	{"Walk-in fridge", models.ZoneFridge},
	{"Under-counter fridge", models.ZoneFridge},
	{"Chest freezer", models.ZoneFreezer},
	{"Hot hold unit", models.ZoneHotHold},
	{"Dry store", models.ZoneAmbient},
}

func seedDefaultConfigs(orgID uint) error {
	for _, shift := range []models.Shift{models.ShiftAM, models.ShiftPM} {
		for i, d := range defaultCheckLocations {
			cfg := models.CheckLocationConfig{
				OrgID:     orgID,
				Name:      d.Name,
				ZoneType:  d.ZoneType,
				Shift:     shift,
				SortOrder: i,
				Active:    true,
			}
			if err := database.DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func toCheckConfigResponse(cfg models.CheckLocationConfig) CheckConfigResponse {
	return CheckConfigResponse{
		ID:        cfg.ID,
		OrgID:     cfg.OrgID,
		Name:      cfg.Name,
		ZoneType:  string(cfg.ZoneType),
		ZoneLabel: ZoneLabel(cfg.ZoneType),
		Shift:     string(cfg.Shift),
		SortOrder: cfg.SortOrder,
		Active:    cfg.Active,
		CreatedAt: cfg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/check-configs?shift=am&include_inactive=true&org_id=1
// Seeds the default locations on first use for an organization.
func ListCheckConfigsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var total int64
		if err := database.DB.Model(&models.CheckLocationConfig{}).
			Where("org_id = ?", orgID).
			Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read check configs")
		}
		if total == 0 {
			if err := seedDefaultConfigs(orgID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not seed default check locations")
			}
		}

		dbq := database.DB.Where("org_id = ?", orgID)

		if shift := c.Query("shift"); shift != "" {
			if shift != string(models.ShiftAM) && shift != string(models.ShiftPM) {
				return fiber.NewError(fiber.StatusBadRequest, "shift must be 'am' or 'pm'")
			}
			dbq = dbq.Where("shift = ?", shift)
		}

		if c.Query("include_inactive") != "true" {
			dbq = dbq.Where("active = true")
		}

		var configs []models.CheckLocationConfig
		if err := dbq.Order("shift ASC, sort_order ASC, id ASC").Find(&configs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list check configs")
		}

		resp := make([]CheckConfigResponse, 0, len(configs))
		for _, cfg := range configs {
			resp = append(resp, toCheckConfigResponse(cfg))
		}

		return c.JSON(resp)
	}
}

// POST /api/check-configs
func CreateCheckConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCheckConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if !KnownZone(models.ZoneType(body.ZoneType)) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown zone type")
		}
		if body.Shift != string(models.ShiftAM) && body.Shift != string(models.ShiftPM) {
			return fiber.NewError(fiber.StatusBadRequest, "shift must be 'am' or 'pm'")
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		cfg := models.CheckLocationConfig{
			OrgID:     orgID,
			Name:      body.Name,
			ZoneType:  models.ZoneType(body.ZoneType),
			Shift:     models.Shift(body.Shift),
			SortOrder: body.SortOrder,
			Active:    true,
		}

		if err := database.DB.Create(&cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create check config")
		}

		userID, userName, _, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "check_location_config",
				EntityID:    cfg.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Check location added: %s (%s, %s)", cfg.Name, cfg.ZoneType, cfg.Shift),
				Before:      nil,
				After:       cfg,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toCheckConfigResponse(cfg))
	}
}

// PUT /api/check-configs/:id
func UpdateCheckConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cfg models.CheckLocationConfig
		if err := database.DB.First(&cfg, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Check config not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && cfg.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Check config belongs to another organization")
		}

		var body UpdateCheckConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := cfg

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			cfg.Name = name
		}
		if body.ZoneType != nil {
			if !KnownZone(models.ZoneType(*body.ZoneType)) {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown zone type")
			}
			cfg.ZoneType = models.ZoneType(*body.ZoneType)
		}
		if body.Shift != nil {
			if *body.Shift != string(models.ShiftAM) && *body.Shift != string(models.ShiftPM) {
				return fiber.NewError(fiber.StatusBadRequest, "shift must be 'am' or 'pm'")
			}
			cfg.Shift = models.Shift(*body.Shift)
		}
		if body.SortOrder != nil {
			cfg.SortOrder = *body.SortOrder
		}
		if body.Active != nil {
			cfg.Active = *body.Active
		}

		if err := database.DB.Save(&cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update check config")
		}

		userID, userName, _, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &cfg.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "check_location_config",
				EntityID:    cfg.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Check location updated: %s", cfg.Name),
				Before:      before,
				After:       cfg,
			})
		}

		return c.JSON(toCheckConfigResponse(cfg))
	}
}

// DELETE /api/check-configs/:id
// Soft delete: historical logs keep referencing the config, so the row is
// only deactivated.
func DeleteCheckConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cfg models.CheckLocationConfig
		if err := database.DB.First(&cfg, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Check config not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && cfg.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Check config belongs to another organization")
		}

		before := cfg
		cfg.Active = false

		if err := database.DB.Save(&cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate check config")
		}

		userID, userName, _, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &cfg.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "check_location_config",
				EntityID:    cfg.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Check location deactivated: %s", cfg.Name),
				Before:      before,
				After:       cfg,
			})
		}

		return c.JSON(fiber.Map{"message": "Check location deactivated"})
	}
}
