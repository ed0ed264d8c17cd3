package tempcheck

import (
	"fmt"
	"time"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SessionEntryResponse struct {
	ConfigID  uint    `json:"config_id"`
	Name      string  `json:"name"`
	ZoneType  string  `json:"zone_type"`
	ZoneLabel string  `json:"zone_label"`
	Value     *string `json:"value"`
	Status    *string `json:"status"`
	Saved     bool    `json:"saved"`
	LogID     *uint   `json:"log_id"`
}

type SessionResponse struct {
	OrgID       uint                   `json:"org_id"`
	Shift       string                 `json:"shift"`
	Date        string                 `json:"date"`
	Entries     []SessionEntryResponse `json:"entries"`
	Completed   int                    `json:"completed"`
	Total       int                    `json:"total"`
	AllComplete bool                   `json:"all_complete"`
}

type ReadingPayload struct {
	ConfigID uint   `json:"config_id"`
	Value    string `json:"value"` // raw text, parsed server-side
	Unit     string `json:"unit"`
}

type SaveChecksRequest struct {
	Shift    string           `json:"shift"`
	Date     string           `json:"date"` // "2026-08-31", defaults to today
	Readings []ReadingPayload `json:"readings"`
	OrgID    *uint            `json:"org_id"` // super_admin only
}

type SaveChecksResponse struct {
	SavedCount int                    `json:"saved_count"`
	Entries    []SessionEntryResponse `json:"entries"`
}

// Dates are UTC midnights everywhere: time.Parse yields UTC, so the
// empty-date default must too, or lookups miss rows on non-UTC servers.
func parseSessionDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be 'YYYY-MM-DD'")
	}
	return d, nil
}

func toSessionEntryResponse(e CheckEntry) SessionEntryResponse {
	resp := SessionEntryResponse{
		ConfigID:  e.ConfigID,
		Name:      e.Name,
		ZoneType:  string(e.ZoneType),
		ZoneLabel: ZoneLabel(e.ZoneType),
		Saved:     e.Saved,
		LogID:     e.LogID,
	}
	if e.RawValue != "" {
		v := e.RawValue
		resp.Value = &v
	}
	if e.Status != nil {
		s := string(*e.Status)
		resp.Status = &s
	}
	return resp
}

// GET /api/temperature-checks/session?shift=am&date=2026-08-31&org_id=1
// One editable row per active check location of the shift, pre-filled from
// logs already saved for that date.
func GetSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		shift := c.Query("shift", string(models.ShiftAM))
		if shift != string(models.ShiftAM) && shift != string(models.ShiftPM) {
			return fiber.NewError(fiber.StatusBadRequest, "shift must be 'am' or 'pm'")
		}

		date, err := parseSessionDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var configs []models.CheckLocationConfig
		if err := database.DB.
			Where("org_id = ? AND shift = ? AND active = true", orgID, shift).
			Order("sort_order ASC, id ASC").
			Find(&configs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load check locations")
		}

		var logs []models.TemperatureLogEntry
		if err := database.DB.
			Where("org_id = ? AND shift = ? AND date = ?", orgID, shift, date).
			Order("created_at DESC").
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load today's logs")
		}

		entries := LoadSession(configs, logs)

		resp := SessionResponse{
			OrgID:       orgID,
			Shift:       shift,
			Date:        date.Format("2006-01-02"),
			Entries:     make([]SessionEntryResponse, 0, len(entries)),
			Completed:   Completed(entries),
			Total:       len(entries),
			AllComplete: AllComplete(entries),
		}
		for _, e := range entries {
			resp.Entries = append(resp.Entries, toSessionEntryResponse(e))
		}

		return c.JSON(resp)
	}
}

// POST /api/temperature-checks
// Batch save of a shift's readings. Each reading is re-parsed and classified
// server-side; blank or unparseable values and configs already logged for the
// date are skipped. Only the aggregate saved count is reported; rows that
// fail to persist are left out of it.
func SaveChecksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveChecksRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Shift != string(models.ShiftAM) && body.Shift != string(models.ShiftPM) {
			return fiber.NewError(fiber.StatusBadRequest, "shift must be 'am' or 'pm'")
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		date, err := parseSessionDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		savedCount := 0
		for _, r := range body.Readings {
			v, ok := ParseReading(r.Value)
			if !ok {
				continue
			}

			var cfg models.CheckLocationConfig
			if err := database.DB.
				First(&cfg, "id = ? AND org_id = ?", r.ConfigID, orgID).Error; err != nil {
				continue
			}

			// one immutable log per config, shift and date
			var existing int64
			database.DB.Model(&models.TemperatureLogEntry{}).
				Where("org_id = ? AND config_id = ? AND shift = ? AND date = ?", orgID, cfg.ID, body.Shift, date).
				Count(&existing)
			if existing > 0 {
				continue
			}

			unit := r.Unit
			if unit == "" {
				unit = "C"
			}

			entry := models.TemperatureLogEntry{
				OrgID:    orgID,
				ConfigID: cfg.ID,
				Value:    v,
				Unit:     unit,
				ZoneType: cfg.ZoneType,
				Status:   Classify(v, cfg.ZoneType),
				Shift:    models.Shift(body.Shift),
				Date:     date,
				UserID:   userID,
				UserName: userName,
			}

			if err := database.DB.Create(&entry).Error; err != nil {
				continue
			}
			savedCount++
		}

		if savedCount > 0 {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "temperature_check_batch",
				EntityID:    0,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("%s checks for %s: %d reading(s) saved", body.Shift, date.Format("2006-01-02"), savedCount),
				Before:      nil,
				After:       body.Readings,
			})
		}

		// return the refreshed session so the client can re-render
		var configs []models.CheckLocationConfig
		database.DB.
			Where("org_id = ? AND shift = ? AND active = true", orgID, body.Shift).
			Order("sort_order ASC, id ASC").
			Find(&configs)

		var logs []models.TemperatureLogEntry
		database.DB.
			Where("org_id = ? AND shift = ? AND date = ?", orgID, body.Shift, date).
			Order("created_at DESC").
			Find(&logs)

		entries := LoadSession(configs, logs)
		entryResponses := make([]SessionEntryResponse, 0, len(entries))
		for _, e := range entries {
			entryResponses = append(entryResponses, toSessionEntryResponse(e))
		}

		return c.Status(fiber.StatusCreated).JSON(SaveChecksResponse{
			SavedCount: savedCount,
			Entries:    entryResponses,
		})
	}
}

// GET /api/temperature-logs?from=2026-08-01&to=2026-08-31&org_id=1
func ListLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		dbq := database.DB.
			Preload("Config").
			Where("org_id = ?", orgID)

		if from := c.Query("from"); from != "" {
			d, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from must be 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("date >= ?", d)
		}
		if to := c.Query("to"); to != "" {
			d, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to must be 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("date <= ?", d)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var logs []models.TemperatureLogEntry
		if err := dbq.Order("date DESC, created_at DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list temperature logs")
		}

		type LogResponse struct {
			ID         uint    `json:"id"`
			ConfigID   uint    `json:"config_id"`
			ConfigName string  `json:"config_name"`
			Value      float64 `json:"value"`
			Unit       string  `json:"unit"`
			ZoneType   string  `json:"zone_type"`
			Status     string  `json:"status"`
			Shift      string  `json:"shift"`
			Date       string  `json:"date"`
			UserName   string  `json:"user_name"`
			CreatedAt  string  `json:"created_at"`
		}

		resp := make([]LogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, LogResponse{
				ID:         l.ID,
				ConfigID:   l.ConfigID,
				ConfigName: l.Config.Name,
				Value:      l.Value,
				Unit:       l.Unit,
				ZoneType:   string(l.ZoneType),
				Status:     string(l.Status),
				Shift:      string(l.Shift),
				Date:       l.Date.Format("2006-01-02"),
				UserName:   l.UserName,
				CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
