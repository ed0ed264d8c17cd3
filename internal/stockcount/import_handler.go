package stockcount

import (
	"encoding/json"
	"fmt"
	"strings"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// POST /api/stock-templates/:id/items/import
// Replaces a template's item list from an uploaded .xlsx: column A item name,
// column B par level. A header row ("ITEM", "PRODUCT"...) is skipped.
func ImportTemplateItemsHandler() fiber.Handler {
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

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open file: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read Excel file: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}
		sheetName := sheetList[0]

		rows, err := excelFile.GetRows(sheetName)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read sheet: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is empty")
		}

		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "ITEM") || strings.Contains(firstCell, "PRODUCT") || firstCell == "NAME" {
				startIndex = 1
			}
		}

		items := make([]models.TemplateItem, 0, len(rows))
		seen := make(map[string]bool)
		skipped := 0
		for _, row := range rows[startIndex:] {
			if len(row) == 0 {
				continue
			}
			name := strings.TrimSpace(row[0])
			if name == "" || seen[name] {
				skipped++
				continue
			}
			seen[name] = true

			par := ""
			if len(row) > 1 {
				par = strings.TrimSpace(row[1])
			}
			items = append(items, models.TemplateItem{Name: name, ParLevel: par})
		}

		if len(items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No items found in the file")
		}

		before := tpl

		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not encode items")
		}
		tpl.Items = string(itemsJSON)

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
				Description: fmt.Sprintf("Template items imported: %s (%d items)", tpl.Name, len(items)),
				Before:      before,
				After:       tpl,
			})
		}

		return c.JSON(fiber.Map{
			"imported": len(items),
			"skipped":  skipped,
		})
	}
}
