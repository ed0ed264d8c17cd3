package stockcount

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

func seedTemplate(t *testing.T, db *gorm.DB) models.SectionStockTemplate {
	t.Helper()
	items, _ := json.Marshal([]models.TemplateItem{
		{Name: "Tomatoes", ParLevel: "2 cases"},
		{Name: "Butter", ParLevel: "5 kg"},
	})
	locations, _ := json.Marshal([]string{"Walk-in", "Dry store"})
	tasks, _ := json.Marshal([]string{"Dice onions"})

	tpl := models.SectionStockTemplate{
		OrgID:     1,
		Name:      "Larder",
		Items:     string(items),
		Locations: string(locations),
		PrepTasks: string(tasks),
	}
	require.NoError(t, db.Create(&tpl).Error)
	return tpl
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestSaveThenResolveRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	tpl := seedTemplate(t, db)
	date := day("2026-03-10")

	grid := Grid{
		"Tomatoes": {"Walk-in": "3", "Dry store": "1"},
		"Butter":   {"Walk-in": "", "Dry store": "4 kg"},
	}
	checklist := []models.PrepTaskState{{Name: "Dice onions", Done: true}}
	gridJSON, _ := json.Marshal(grid)
	checklistJSON, _ := json.Marshal(checklist)

	saved, created, err := upsertCount(db, models.NightlyStockCount{
		OrgID:         tpl.OrgID,
		TemplateID:    tpl.ID,
		Date:          date,
		StockData:     string(gridJSON),
		PrepChecklist: string(checklistJSON),
		Notes:         "short on butter",
		Status:        models.CountStatusDraft,
	})
	require.NoError(t, err)
	assert.True(t, created)

	// fetching the same (template, date) hands back the saved payload verbatim
	existing, err := getCountForDate(db, tpl.ID, date)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, saved.ID, existing.ID)

	data, err := decodeCountData(*existing)
	require.NoError(t, err)

	spec, err := decodeTemplate(tpl)
	require.NoError(t, err)

	resolved := Resolve(spec, &data, nil)
	assert.True(t, resolved.Resumed)
	assert.Equal(t, grid, resolved.Grid)
	assert.Equal(t, checklist, resolved.Checklist)
	assert.Equal(t, "short on butter", resolved.Notes)
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)
	tpl := seedTemplate(t, db)
	date := day("2026-03-10")

	first, created, err := upsertCount(db, models.NightlyStockCount{
		OrgID:      tpl.OrgID,
		TemplateID: tpl.ID,
		Date:       date,
		StockData:  `{"Tomatoes":{"Walk-in":"3"}}`,
		Status:     models.CountStatusDraft,
	})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := upsertCount(db, models.NightlyStockCount{
		OrgID:      tpl.OrgID,
		TemplateID: tpl.ID,
		Date:       date,
		StockData:  `{"Tomatoes":{"Walk-in":"5"}}`,
		Status:     models.CountStatusCompleted,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID, "same row, last writer wins")
	assert.Equal(t, models.CountStatusCompleted, second.Status)

	var total int64
	require.NoError(t, db.Model(&models.NightlyStockCount{}).
		Where("template_id = ?", tpl.ID).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestMostRecentPriorPicksLatestOfSameTemplate(t *testing.T) {
	db := setupTestDB(t)
	tpl := seedTemplate(t, db)
	other := seedTemplate(t, db)

	for _, d := range []string{"2026-03-05", "2026-03-08"} {
		_, _, err := upsertCount(db, models.NightlyStockCount{
			OrgID:      tpl.OrgID,
			TemplateID: tpl.ID,
			Date:       day(d),
			StockData:  `{"Tomatoes":{"Walk-in":"` + d + `"}}`,
			Status:     models.CountStatusCompleted,
		})
		require.NoError(t, err)
	}
	// a newer count of a different template must never bleed over
	_, _, err := upsertCount(db, models.NightlyStockCount{
		OrgID:      other.OrgID,
		TemplateID: other.ID,
		Date:       day("2026-03-09"),
		StockData:  `{"Tomatoes":{"Walk-in":"wrong"}}`,
		Status:     models.CountStatusCompleted,
	})
	require.NoError(t, err)

	prior, err := getMostRecentPrior(db, tpl.ID, day("2026-03-10"))
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, day("2026-03-08").Format("2006-01-02"), prior.Date.Format("2006-01-02"))

	none, err := getMostRecentPrior(db, tpl.ID, day("2026-03-05"))
	require.NoError(t, err)
	assert.Nil(t, none)
}
