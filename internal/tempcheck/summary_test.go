package tempcheck

import (
	"testing"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeCounts(t *testing.T) {
	logs := []models.TemperatureLogEntry{
		{Status: models.StatusPass},
		{Status: models.StatusPass},
		{Status: models.StatusWarning},
		{Status: models.StatusFail},
	}

	s := Summarize(logs)
	assert.Equal(t, ArchiveSummary{Total: 4, Pass: 2, Warning: 1, Fail: 1}, s)
}

func TestSummarizeExcludesUnrecognizedStatuses(t *testing.T) {
	logs := []models.TemperatureLogEntry{
		{Status: models.StatusPass},
		{Status: models.StatusUnknown},
		{Status: models.CheckStatus("PASS")}, // exact match only
		{Status: models.CheckStatus("")},
	}

	s := Summarize(logs)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Pass)
	assert.Equal(t, 0, s.Warning)
	assert.Equal(t, 0, s.Fail)
	assert.LessOrEqual(t, s.Pass+s.Warning+s.Fail, s.Total)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, ArchiveSummary{}, Summarize(nil))
}
