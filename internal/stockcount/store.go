package stockcount

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kitchenops-backend/internal/models"

	"gorm.io/gorm"
)

// decodeTemplate unpacks a template's JSONB payloads. Empty payloads decode
// to empty slices, an unconfigured template is not an error.
func decodeTemplate(tpl models.SectionStockTemplate) (TemplateSpec, error) {
	spec := TemplateSpec{}

	if tpl.Items != "" {
		if err := json.Unmarshal([]byte(tpl.Items), &spec.Items); err != nil {
			return spec, fmt.Errorf("could not decode template items: %w", err)
		}
	}
	if tpl.Locations != "" {
		if err := json.Unmarshal([]byte(tpl.Locations), &spec.Locations); err != nil {
			return spec, fmt.Errorf("could not decode template locations: %w", err)
		}
	}
	if tpl.PrepTasks != "" {
		if err := json.Unmarshal([]byte(tpl.PrepTasks), &spec.PrepTasks); err != nil {
			return spec, fmt.Errorf("could not decode template prep tasks: %w", err)
		}
	}

	return spec, nil
}

func decodeCountData(count models.NightlyStockCount) (CountData, error) {
	data := CountData{Grid: Grid{}, Notes: count.Notes}

	if count.StockData != "" {
		if err := json.Unmarshal([]byte(count.StockData), &data.Grid); err != nil {
			return data, fmt.Errorf("could not decode stock data: %w", err)
		}
	}
	if count.PrepChecklist != "" {
		if err := json.Unmarshal([]byte(count.PrepChecklist), &data.Checklist); err != nil {
			return data, fmt.Errorf("could not decode prep checklist: %w", err)
		}
	}

	return data, nil
}

// getCountForDate returns the count saved for exactly (template, date), or
// nil when none exists.
func getCountForDate(db *gorm.DB, templateID uint, date time.Time) (*models.NightlyStockCount, error) {
	var count models.NightlyStockCount
	err := db.Where("template_id = ? AND date = ?", templateID, date).First(&count).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// getMostRecentPrior returns the latest count of the same template strictly
// before the date, or nil. Templates never share carry-forward state.
func getMostRecentPrior(db *gorm.DB, templateID uint, date time.Time) (*models.NightlyStockCount, error) {
	var count models.NightlyStockCount
	err := db.
		Where("template_id = ? AND date < ?", templateID, date).
		Order("date DESC").
		First(&count).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// upsertCount saves a count keyed on (template, date): the existing row for
// that date is updated in place, otherwise a new row is inserted. Last writer
// wins, there is no revision check.
func upsertCount(db *gorm.DB, count models.NightlyStockCount) (models.NightlyStockCount, bool, error) {
	existing, err := getCountForDate(db, count.TemplateID, count.Date)
	if err != nil {
		return count, false, err
	}

	if existing == nil {
		if err := db.Create(&count).Error; err != nil {
			return count, false, fmt.Errorf("could not create count: %w", err)
		}
		return count, true, nil
	}

	existing.StockData = count.StockData
	existing.PrepChecklist = count.PrepChecklist
	existing.Notes = count.Notes
	existing.Status = count.Status
	existing.CountedBy = count.CountedBy
	existing.CountedByName = count.CountedByName

	if err := db.Save(existing).Error; err != nil {
		return count, false, fmt.Errorf("could not update count: %w", err)
	}
	return *existing, false, nil
}
