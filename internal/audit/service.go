package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"
)

type LogOptions struct {
	OrgID       *uint
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns want the JSON literal "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		OrgID:       opts.OrgID,
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}

	return nil
}

// UndoLog reverses the operation a log row records. Temperature log entries
// and monthly archives are immutable and deliberately have no case here.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log not found: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("this operation has already been undone")
	}

	switch log.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("could not delete entity: %w", err)
		}

	case models.AuditActionUpdate:
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("could not restore entity: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(log.EntityType, log.AfterData); err != nil {
			return fmt.Errorf("could not recreate entity: %w", err)
		}

	default:
		return fmt.Errorf("this action cannot be undone")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("could not update log: %w", err)
	}

	undoLog := models.AuditLog{
		OrgID:       log.OrgID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Undone: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("could not write undo log: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "check_location_config":
		return database.DB.Delete(&models.CheckLocationConfig{}, "id = ?", entityID).Error
	case "section_stock_template":
		return database.DB.Delete(&models.SectionStockTemplate{}, "id = ?", entityID).Error
	case "nightly_stock_count":
		return database.DB.Delete(&models.NightlyStockCount{}, "id = ?", entityID).Error
	case "recipe":
		return database.DB.Delete(&models.Recipe{}, "id = ?", entityID).Error
	case "vendor":
		return database.DB.Delete(&models.Vendor{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "check_location_config":
		var cfg models.CheckLocationConfig
		if err := json.Unmarshal([]byte(dataJSON), &cfg); err != nil {
			return err
		}
		cfg.ID = 0
		return database.DB.Create(&cfg).Error

	case "section_stock_template":
		var tpl models.SectionStockTemplate
		if err := json.Unmarshal([]byte(dataJSON), &tpl); err != nil {
			return err
		}
		tpl.ID = 0
		return database.DB.Create(&tpl).Error

	case "nightly_stock_count":
		var count models.NightlyStockCount
		if err := json.Unmarshal([]byte(dataJSON), &count); err != nil {
			return err
		}
		count.ID = 0
		return database.DB.Create(&count).Error

	case "recipe":
		var recipe models.Recipe
		if err := json.Unmarshal([]byte(dataJSON), &recipe); err != nil {
			return err
		}
		recipe.ID = 0
		return database.DB.Create(&recipe).Error

	case "vendor":
		var vendor models.Vendor
		if err := json.Unmarshal([]byte(dataJSON), &vendor); err != nil {
			return err
		}
		vendor.ID = 0
		return database.DB.Create(&vendor).Error

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "check_location_config":
		var cfg models.CheckLocationConfig
		if err := json.Unmarshal([]byte(dataJSON), &cfg); err != nil {
			return err
		}
		cfg.ID = entityID
		return database.DB.Save(&cfg).Error

	case "section_stock_template":
		var tpl models.SectionStockTemplate
		if err := json.Unmarshal([]byte(dataJSON), &tpl); err != nil {
			return err
		}
		tpl.ID = entityID
		return database.DB.Save(&tpl).Error

	case "nightly_stock_count":
		var count models.NightlyStockCount
		if err := json.Unmarshal([]byte(dataJSON), &count); err != nil {
			return err
		}
		count.ID = entityID
		return database.DB.Save(&count).Error

	case "recipe":
		var recipe models.Recipe
		if err := json.Unmarshal([]byte(dataJSON), &recipe); err != nil {
			return err
		}
		recipe.ID = entityID
		return database.DB.Save(&recipe).Error

	case "vendor":
		var vendor models.Vendor
		if err := json.Unmarshal([]byte(dataJSON), &vendor); err != nil {
			return err
		}
		vendor.ID = entityID
		return database.DB.Save(&vendor).Error

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}
