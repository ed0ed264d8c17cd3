package tempcheck

import (
	"testing"
	"time"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigs() []models.CheckLocationConfig {
	return []models.CheckLocationConfig{
		{ID: 1, OrgID: 1, Name: "Walk-in fridge", ZoneType: models.ZoneFridge, Shift: models.ShiftAM, SortOrder: 0, Active: true},
		{ID: 2, OrgID: 1, Name: "Chest freezer", ZoneType: models.ZoneFreezer, Shift: models.ShiftAM, SortOrder: 1, Active: true},
		{ID: 3, OrgID: 1, Name: "Hot hold unit", ZoneType: models.ZoneHotHold, Shift: models.ShiftAM, SortOrder: 2, Active: true},
	}
}

func TestLoadSessionEmpty(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)

	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Empty(t, e.RawValue)
		assert.Nil(t, e.Value)
		assert.Nil(t, e.Status)
		assert.False(t, e.Saved)
	}
	assert.Equal(t, 0, Completed(entries))
	assert.True(t, AllComplete(entries), "a fully blank session is not blocked")
}

func TestLoadSessionPrefillsSavedRows(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	logs := []models.TemperatureLogEntry{
		{ID: 10, OrgID: 1, ConfigID: 2, Value: -19.5, Status: models.StatusPass, Shift: models.ShiftAM, Date: today},
	}

	entries := LoadSession(testConfigs(), logs)

	require.Len(t, entries, 3)
	assert.False(t, entries[0].Saved)

	saved := entries[1]
	assert.True(t, saved.Saved)
	assert.Equal(t, "-19.5", saved.RawValue)
	require.NotNil(t, saved.Value)
	assert.Equal(t, -19.5, *saved.Value)
	require.NotNil(t, saved.Status)
	assert.Equal(t, models.StatusPass, *saved.Status)
	require.NotNil(t, saved.LogID)
	assert.Equal(t, uint(10), *saved.LogID)

	assert.Equal(t, 1, Completed(entries))
	assert.True(t, AllComplete(entries))
}

func TestUpdateValueClassifies(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)

	entries = UpdateValue(entries, 0, "4.5")
	require.NotNil(t, entries[0].Status)
	assert.Equal(t, models.StatusPass, *entries[0].Status)
	assert.False(t, entries[0].Saved)

	entries = UpdateValue(entries, 0, "9")
	require.NotNil(t, entries[0].Status)
	assert.Equal(t, models.StatusFail, *entries[0].Status)
}

func TestUpdateValueUnparseableClearsStatus(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)
	entries = UpdateValue(entries, 0, "4.5")
	require.NotNil(t, entries[0].Status)

	entries = UpdateValue(entries, 0, "abc")
	assert.Nil(t, entries[0].Value)
	assert.Nil(t, entries[0].Status)
	assert.False(t, entries[0].Saved)
	assert.False(t, AllComplete(entries), "a non-blank unparseable row blocks completion")
}

func TestUpdateValueClearsSavedFlag(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	logs := []models.TemperatureLogEntry{
		{ID: 10, OrgID: 1, ConfigID: 1, Value: 3, Status: models.StatusPass, Shift: models.ShiftAM, Date: today},
	}
	entries := LoadSession(testConfigs(), logs)
	require.True(t, entries[0].Saved)

	entries = UpdateValue(entries, 0, "6")
	assert.False(t, entries[0].Saved, "editing a saved row always invalidates it")
	assert.Nil(t, entries[0].LogID)
	require.NotNil(t, entries[0].Status)
	assert.Equal(t, models.StatusWarning, *entries[0].Status)
}

func TestUpdateValueIdempotent(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)

	once := UpdateValue(entries, 1, "-16")
	twice := UpdateValue(once, 1, "-16")

	assert.Equal(t, once[1], twice[1])
}

func TestUpdateValueDoesNotMutateInput(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)
	_ = UpdateValue(entries, 0, "4.5")

	assert.Empty(t, entries[0].RawValue)
	assert.Nil(t, entries[0].Status)
}

func TestUpdateValueOutOfRange(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)
	assert.Equal(t, entries, UpdateValue(entries, -1, "4"))
	assert.Equal(t, entries, UpdateValue(entries, 3, "4"))
}

func TestSaveCandidatesSkipsBlankSavedAndUnparseable(t *testing.T) {
	entries := LoadSession(testConfigs(), nil)
	entries = UpdateValue(entries, 0, "4.5")  // eligible
	entries = UpdateValue(entries, 1, "cold") // unparseable, skipped
	// entries[2] left blank, skipped

	candidates := SaveCandidates(entries)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(1), candidates[0].ConfigID)

	// a saved row is not re-submitted
	entries[0].Saved = true
	assert.Empty(t, SaveCandidates(entries))
}

func TestParseReading(t *testing.T) {
	v, ok := ParseReading(" 4.5 ")
	assert.True(t, ok)
	assert.Equal(t, 4.5, v)

	_, ok = ParseReading("")
	assert.False(t, ok)
	_, ok = ParseReading("four")
	assert.False(t, ok)
}
