package models

import "time"

// MonthlyArchiveSummary: frozen compliance rollup for one calendar month.
// Append-only; the source log table stays the system of record. The unique
// index keeps re-archiving a month from producing duplicate rows.
type MonthlyArchiveSummary struct {
	ID           uint         `gorm:"primaryKey"`
	OrgID        uint         `gorm:"not null;uniqueIndex:idx_archives_org_month"`
	Organization Organization `gorm:"foreignKey:OrgID"`
	Year         int          `gorm:"not null;uniqueIndex:idx_archives_org_month"`
	Month        int          `gorm:"not null;uniqueIndex:idx_archives_org_month"` // 1-12

	TotalCount   int `gorm:"not null;default:0"`
	PassCount    int `gorm:"not null;default:0"`
	WarningCount int `gorm:"not null;default:0"`
	FailCount    int `gorm:"not null;default:0"`

	// Raw snapshot of the month's log entries (JSON array)
	LogsSnapshot string `gorm:"type:jsonb"`

	ArchivedBy     uint
	ArchivedByName string `gorm:"size:100"`
	CreatedAt      time.Time
}
