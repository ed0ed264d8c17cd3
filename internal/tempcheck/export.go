package tempcheck

import (
	"bytes"
	"encoding/json"
	"fmt"

	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// buildArchiveWorkbook renders a frozen monthly archive as an XLSX compliance
// report: a summary block followed by one row per logged reading.
func buildArchiveWorkbook(archive models.MonthlyArchiveSummary) (*bytes.Buffer, error) {
	var logs []models.TemperatureLogEntry
	if archive.LogsSnapshot != "" {
		if err := json.Unmarshal([]byte(archive.LogsSnapshot), &logs); err != nil {
			return nil, fmt.Errorf("could not decode log snapshot: %w", err)
		}
	}

	f := excelize.NewFile()

	sheetName := "Compliance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// summary block
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Temperature compliance %04d-%02d", archive.Year, archive.Month))
	f.SetCellValue(sheetName, "A2", "Total readings")
	f.SetCellValue(sheetName, "B2", archive.TotalCount)
	f.SetCellValue(sheetName, "A3", "Pass")
	f.SetCellValue(sheetName, "B3", archive.PassCount)
	f.SetCellValue(sheetName, "A4", "Warning")
	f.SetCellValue(sheetName, "B4", archive.WarningCount)
	f.SetCellValue(sheetName, "A5", "Fail")
	f.SetCellValue(sheetName, "B5", archive.FailCount)
	f.SetCellValue(sheetName, "A6", "Archived by")
	f.SetCellValue(sheetName, "B6", archive.ArchivedByName)

	headers := []string{"Date", "Shift", "Location", "Zone", "Value", "Unit", "Status", "Recorded by"}
	headerRow := 8

	for i, header := range headers {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, headerRow, headerRow, headerStyle)
	}

	for rowIndex, l := range logs {
		row := headerRow + 1 + rowIndex

		values := []interface{}{
			l.Date.Format("2006-01-02"),
			string(l.Shift),
			l.Config.Name,
			ZoneLabel(l.ZoneType),
			l.Value,
			l.Unit,
			string(l.Status),
			l.UserName,
		}

		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		col := string('A' + rune(i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	// drop the default sheet
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %v", err)
	}

	return buf, nil
}

// GET /api/archives/:id/export
func ExportArchiveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var archive models.MonthlyArchiveSummary
		if err := database.DB.First(&archive, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Archive not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && archive.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Archive belongs to another organization")
		}

		buf, err := buildArchiveWorkbook(archive)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
		}

		filename := fmt.Sprintf("compliance-%04d-%02d.xlsx", archive.Year, archive.Month)
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

		return c.Send(buf.Bytes())
	}
}
