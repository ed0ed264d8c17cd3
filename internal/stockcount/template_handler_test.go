package stockcount

import (
	"testing"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatePayloadRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	body := TemplatePayload{
		Name: "Pastry",
		Items: []models.TemplateItem{
			{Name: "Flour", ParLevel: "25 kg"},
			{Name: "Eggs", ParLevel: "10 dozen"},
		},
		Locations: []string{"Dry store", "Walk-in"},
		PrepTasks: []string{"Laminate croissants", "Proof sourdough"},
	}

	tpl := models.SectionStockTemplate{OrgID: 1}
	require.NoError(t, encodeTemplatePayload(&tpl, body))
	require.NoError(t, db.Create(&tpl).Error)

	var stored models.SectionStockTemplate
	require.NoError(t, db.First(&stored, tpl.ID).Error)

	spec, err := decodeTemplate(stored)
	require.NoError(t, err)
	assert.Equal(t, body.Items, spec.Items)
	assert.Equal(t, body.Locations, spec.Locations)
	assert.Equal(t, body.PrepTasks, spec.PrepTasks)
	assert.Equal(t, "Pastry", stored.Name)
}

func TestTemplatePayloadRoundTripEmptyLists(t *testing.T) {
	tpl := models.SectionStockTemplate{OrgID: 1}
	require.NoError(t, encodeTemplatePayload(&tpl, TemplatePayload{Name: "Bare"}))

	resp, err := toTemplateResponse(tpl)
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.NotNil(t, resp.Locations)
	assert.NotNil(t, resp.PrepTasks)
	assert.Empty(t, resp.Items)
}

func TestDecodeTemplateRejectsMalformedItems(t *testing.T) {
	tpl := models.SectionStockTemplate{
		OrgID: 1,
		Name:  "Broken",
		Items: `{"not":"a list"}`,
	}
	_, err := decodeTemplate(tpl)
	assert.Error(t, err)
}
