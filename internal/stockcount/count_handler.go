package stockcount

import (
	"encoding/json"
	"fmt"
	"time"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CountResponse struct {
	TemplateID   uint                   `json:"template_id"`
	TemplateName string                 `json:"template_name"`
	Date         string                 `json:"date"`
	Grid         Grid                   `json:"grid"`
	Checklist    []models.PrepTaskState `json:"checklist"`
	Notes        string                 `json:"notes"`
	Status       string                 `json:"status"`
	Resumed      bool                   `json:"resumed"`
}

type SaveCountRequest struct {
	TemplateID uint                   `json:"template_id"`
	Date       string                 `json:"date"`
	Grid       Grid                   `json:"grid"`
	Checklist  []models.PrepTaskState `json:"checklist"`
	Notes      string                 `json:"notes"`
	Completed  bool                   `json:"completed"`
}

// Count dates are UTC midnights: time.Parse yields UTC, so the empty-date
// default must too, or the (template, date) lookup misses saved rows on
// non-UTC servers.
func parseCountDate(raw string) (time.Time, error) {
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

// GET /api/stock-counts?template_id=1&date=2026-08-31
// Returns the saved count for the date when one exists; otherwise a draft
// with stock values carried forward from the latest prior count and a fresh
// prep checklist. The draft is not persisted until an explicit save.
func GetCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var templateID uint
		if _, err := fmt.Sscan(c.Query("template_id"), &templateID); err != nil || templateID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "template_id is required")
		}

		date, err := parseCountDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var tpl models.SectionStockTemplate
		if err := database.DB.First(&tpl, "id = ? AND org_id = ?", templateID, orgID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Template not found")
		}

		spec, err := decodeTemplate(tpl)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode template")
		}

		existing, err := getCountForDate(database.DB, tpl.ID, date)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load count")
		}

		var existingData *CountData
		status := models.CountStatusDraft
		if existing != nil {
			data, err := decodeCountData(*existing)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not decode count")
			}
			existingData = &data
			status = existing.Status
		}

		var priorData *CountData
		if existingData == nil {
			prior, err := getMostRecentPrior(database.DB, tpl.ID, date)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load prior count")
			}
			if prior != nil {
				data, err := decodeCountData(*prior)
				if err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Could not decode prior count")
				}
				priorData = &data
			}
		}

		resolved := Resolve(spec, existingData, priorData)
		if resolved.Checklist == nil {
			resolved.Checklist = []models.PrepTaskState{}
		}

		return c.JSON(CountResponse{
			TemplateID:   tpl.ID,
			TemplateName: tpl.Name,
			Date:         date.Format("2006-01-02"),
			Grid:         resolved.Grid,
			Checklist:    resolved.Checklist,
			Notes:        resolved.Notes,
			Status:       string(status),
			Resumed:      resolved.Resumed,
		})
	}
}

// POST /api/stock-counts
// Upsert keyed on (template, date). Last writer wins.
func SaveCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveCountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.TemplateID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "template_id is required")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		date, err := parseCountDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var tpl models.SectionStockTemplate
		if err := database.DB.First(&tpl, "id = ? AND org_id = ?", body.TemplateID, orgID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Template not found")
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		if body.Grid == nil {
			body.Grid = Grid{}
		}
		if body.Checklist == nil {
			body.Checklist = []models.PrepTaskState{}
		}

		gridJSON, err := json.Marshal(body.Grid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not encode stock data")
		}
		checklistJSON, err := json.Marshal(body.Checklist)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not encode prep checklist")
		}

		status := models.CountStatusDraft
		if body.Completed {
			status = models.CountStatusCompleted
		}

		count := models.NightlyStockCount{
			OrgID:         orgID,
			TemplateID:    tpl.ID,
			Date:          date,
			StockData:     string(gridJSON),
			PrepChecklist: string(checklistJSON),
			Notes:         body.Notes,
			Status:        status,
			CountedBy:     userID,
			CountedByName: userName,
		}

		saved, created, err := upsertCount(database.DB, count)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save count")
		}

		action := models.AuditActionUpdate
		if created {
			action = models.AuditActionCreate
		}
		_ = audit.WriteLog(audit.LogOptions{
			OrgID:       &orgID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "nightly_stock_count",
			EntityID:    saved.ID,
			Action:      action,
			Description: fmt.Sprintf("Stock count saved: %s %s", tpl.Name, date.Format("2006-01-02")),
			Before:      nil,
			After:       saved,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      saved.ID,
			"created": created,
			"date":    saved.Date.Format("2006-01-02"),
			"status":  saved.Status,
		})
	}
}

// GET /api/stock-counts/history?template_id=1
func ListCountsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		dbq := database.DB.
			Preload("Template").
			Where("org_id = ?", orgID)

		if tidStr := c.Query("template_id"); tidStr != "" {
			var tid uint
			if _, err := fmt.Sscan(tidStr, &tid); err == nil && tid > 0 {
				dbq = dbq.Where("template_id = ?", tid)
			}
		}

		var counts []models.NightlyStockCount
		if err := dbq.Order("date DESC").Find(&counts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list counts")
		}

		type HistoryRow struct {
			ID           uint   `json:"id"`
			TemplateID   uint   `json:"template_id"`
			TemplateName string `json:"template_name"`
			Date         string `json:"date"`
			Status       string `json:"status"`
			CountedBy    string `json:"counted_by"`
			UpdatedAt    string `json:"updated_at"`
		}

		resp := make([]HistoryRow, 0, len(counts))
		for _, cnt := range counts {
			resp = append(resp, HistoryRow{
				ID:           cnt.ID,
				TemplateID:   cnt.TemplateID,
				TemplateName: cnt.Template.Name,
				Date:         cnt.Date.Format("2006-01-02"),
				Status:       string(cnt.Status),
				CountedBy:    cnt.CountedByName,
				UpdatedAt:    cnt.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
