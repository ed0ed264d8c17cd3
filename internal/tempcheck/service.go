package tempcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kitchenops-backend/internal/models"

	"gorm.io/gorm"
)

// ErrAlreadyArchived: the (organization, month) pair already has a summary.
var ErrAlreadyArchived = errors.New("month already archived")

// ArchiveMonth freezes one calendar month of temperature logs into a
// MonthlyArchiveSummary row. The source logs are untouched, the archive is a
// point-in-time export. Shared by the HTTP handler and the cron job.
func ArchiveMonth(db *gorm.DB, orgID uint, year, month int, userID uint, userName string) (*models.MonthlyArchiveSummary, error) {
	if year < 2000 || month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid year or month")
	}

	var existing models.MonthlyArchiveSummary
	err := db.Where("org_id = ? AND year = ? AND month = ?", orgID, year, month).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyArchived
	}

	// log dates are stored as UTC midnights; the month window must match
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := firstDay.AddDate(0, 1, 0)

	var logs []models.TemperatureLogEntry
	if err := db.
		Preload("Config").
		Where("org_id = ? AND date >= ? AND date < ?", orgID, firstDay, nextMonth).
		Order("date ASC, created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("could not load logs: %w", err)
	}

	summary := Summarize(logs)

	snapshot, err := json.Marshal(logs)
	if err != nil {
		return nil, fmt.Errorf("could not snapshot logs: %w", err)
	}

	archive := models.MonthlyArchiveSummary{
		OrgID:          orgID,
		Year:           year,
		Month:          month,
		TotalCount:     summary.Total,
		PassCount:      summary.Pass,
		WarningCount:   summary.Warning,
		FailCount:      summary.Fail,
		LogsSnapshot:   string(snapshot),
		ArchivedBy:     userID,
		ArchivedByName: userName,
	}

	if err := db.Create(&archive).Error; err != nil {
		return nil, fmt.Errorf("could not create archive: %w", err)
	}

	return &archive, nil
}
