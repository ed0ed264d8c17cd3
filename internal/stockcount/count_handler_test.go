package stockcount

import (
	"testing"
	"time"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountDate(t *testing.T) {
	d, err := parseCountDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = parseCountDate("March 10")
	assert.Error(t, err)
}

func TestParseCountDateDefaultMatchesParsedToday(t *testing.T) {
	d, err := parseCountDate("")
	require.NoError(t, err)

	// the default must land on the same instant an explicit "today" parses
	// to, whatever the server's zone
	explicit, err := parseCountDate(time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, explicit, d)
	assert.Equal(t, time.UTC, d.Location())
}

func TestCountSavedTodayIsFoundToday(t *testing.T) {
	db := setupTestDB(t)
	tpl := seedTemplate(t, db)

	date, err := parseCountDate("")
	require.NoError(t, err)

	saved, _, err := upsertCount(db, models.NightlyStockCount{
		OrgID:      tpl.OrgID,
		TemplateID: tpl.ID,
		Date:       date,
		StockData:  `{"Tomatoes":{"Walk-in":"3"}}`,
		Status:     models.CountStatusDraft,
	})
	require.NoError(t, err)

	// a client sending today's date explicitly must hit the same row the
	// empty-date default created
	explicit, err := parseCountDate(time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)

	found, err := getCountForDate(db, tpl.ID, explicit)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, saved.ID, found.ID)
}
