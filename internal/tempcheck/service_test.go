package tempcheck

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Create(&models.Organization{Name: "Test Kitchen"}).Error)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedConfig(t *testing.T, db *gorm.DB) models.CheckLocationConfig {
	t.Helper()
	cfg := models.CheckLocationConfig{
		OrgID:    1,
		Name:     "Walk-in fridge",
		ZoneType: models.ZoneFridge,
		Shift:    models.ShiftAM,
		Active:   true,
	}
	require.NoError(t, db.Create(&cfg).Error)
	return cfg
}

func seedLog(t *testing.T, db *gorm.DB, cfg models.CheckLocationConfig, date string, status models.CheckStatus) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.TemperatureLogEntry{
		OrgID:    cfg.OrgID,
		ConfigID: cfg.ID,
		Value:    4.0,
		Unit:     "C",
		ZoneType: cfg.ZoneType,
		Status:   status,
		Shift:    cfg.Shift,
		Date:     d,
		UserID:   1,
		UserName: "Chef",
	}).Error)
}

func TestArchiveMonthCountsWholeMonthOnly(t *testing.T) {
	db := setupTestDB(t)
	cfg := seedConfig(t, db)

	// neighbours on either side of March must stay out
	seedLog(t, db, cfg, "2026-02-28", models.StatusPass)
	seedLog(t, db, cfg, "2026-03-01", models.StatusPass)
	seedLog(t, db, cfg, "2026-03-15", models.StatusWarning)
	seedLog(t, db, cfg, "2026-03-31", models.StatusFail)
	seedLog(t, db, cfg, "2026-04-01", models.StatusFail)

	archive, err := ArchiveMonth(db, cfg.OrgID, 2026, 3, 1, "Chef")
	require.NoError(t, err)

	assert.Equal(t, 3, archive.TotalCount)
	assert.Equal(t, 1, archive.PassCount)
	assert.Equal(t, 1, archive.WarningCount)
	assert.Equal(t, 1, archive.FailCount, "the last day of the month belongs to its archive")
}

func TestArchiveMonthSnapshotHoldsTheArchivedRows(t *testing.T) {
	db := setupTestDB(t)
	cfg := seedConfig(t, db)

	seedLog(t, db, cfg, "2026-03-02", models.StatusPass)
	seedLog(t, db, cfg, "2026-03-09", models.StatusFail)
	seedLog(t, db, cfg, "2026-04-05", models.StatusPass)

	archive, err := ArchiveMonth(db, cfg.OrgID, 2026, 3, 1, "Chef")
	require.NoError(t, err)

	var rows []models.TemperatureLogEntry
	require.NoError(t, json.Unmarshal([]byte(archive.LogsSnapshot), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-02", rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-03-09", rows[1].Date.Format("2006-01-02"))
	assert.Equal(t, models.StatusFail, rows[1].Status)
	assert.Equal(t, cfg.ID, rows[0].ConfigID)
}

func TestArchiveMonthRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	cfg := seedConfig(t, db)
	seedLog(t, db, cfg, "2026-03-10", models.StatusPass)

	_, err := ArchiveMonth(db, cfg.OrgID, 2026, 3, 1, "Chef")
	require.NoError(t, err)

	_, err = ArchiveMonth(db, cfg.OrgID, 2026, 3, 1, "Chef")
	assert.ErrorIs(t, err, ErrAlreadyArchived)

	// a second organization still gets its own archive for the same month
	require.NoError(t, db.Create(&models.Organization{Name: "Other Kitchen"}).Error)
	other, err := ArchiveMonth(db, 2, 2026, 3, 1, "Chef")
	require.NoError(t, err)
	assert.Equal(t, 0, other.TotalCount)
}

func TestArchiveMonthRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)

	_, err := ArchiveMonth(db, 1, 1999, 3, 1, "Chef")
	assert.Error(t, err)
	_, err = ArchiveMonth(db, 1, 2026, 0, 1, "Chef")
	assert.Error(t, err)
	_, err = ArchiveMonth(db, 1, 2026, 13, 1, "Chef")
	assert.Error(t, err)
}

func TestParseSessionDate(t *testing.T) {
	d, err := parseSessionDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = parseSessionDate("10/03/2026")
	assert.Error(t, err)
}

func TestParseSessionDateDefaultMatchesParsedToday(t *testing.T) {
	d, err := parseSessionDate("")
	require.NoError(t, err)

	// the default must land on the same instant an explicit "today" parses to
	explicit, err := parseSessionDate(time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, explicit, d)
	assert.Equal(t, time.UTC, d.Location())
	h, m, s := d.Clock()
	assert.Zero(t, h+m+s)
}
