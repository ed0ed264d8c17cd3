package stockcount

import (
	"testing"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func larderTemplate() TemplateSpec {
	return TemplateSpec{
		Items: []models.TemplateItem{
			{Name: "Tomatoes", ParLevel: "2 cases"},
			{Name: "Butter", ParLevel: "5 kg"},
		},
		Locations: []string{"Walk-in", "Dry store"},
		PrepTasks: []string{"Dice onions", "Make stock"},
	}
}

func TestResolveNoHistory(t *testing.T) {
	resolved := Resolve(larderTemplate(), nil, nil)

	assert.False(t, resolved.Resumed)
	require.Len(t, resolved.Grid, 2)
	for _, item := range []string{"Tomatoes", "Butter"} {
		row, ok := resolved.Grid[item]
		require.True(t, ok, item)
		require.Len(t, row, 2)
		assert.Equal(t, "", row["Walk-in"])
		assert.Equal(t, "", row["Dry store"])
	}

	require.Len(t, resolved.Checklist, 2)
	for _, task := range resolved.Checklist {
		assert.False(t, task.Done)
	}
	assert.Empty(t, resolved.Notes)
}

func TestResolveCarriesForwardStockButNotPrep(t *testing.T) {
	prior := &CountData{
		Grid: Grid{
			"Tomatoes": {"Walk-in": "3", "Dry store": "1"},
			// Butter has no prior value at all
		},
		Checklist: []models.PrepTaskState{
			{Name: "Dice onions", Done: true},
			{Name: "Make stock", Done: true},
		},
		Notes: "ran low on butter",
	}

	resolved := Resolve(larderTemplate(), nil, prior)

	assert.False(t, resolved.Resumed)
	assert.Equal(t, "3", resolved.Grid["Tomatoes"]["Walk-in"])
	assert.Equal(t, "1", resolved.Grid["Tomatoes"]["Dry store"])
	assert.Equal(t, "", resolved.Grid["Butter"]["Walk-in"])
	assert.Equal(t, "", resolved.Grid["Butter"]["Dry store"])

	// prep always resets, regardless of the prior checklist state
	require.Len(t, resolved.Checklist, 2)
	for _, task := range resolved.Checklist {
		assert.False(t, task.Done)
	}
	assert.Empty(t, resolved.Notes, "notes do not carry forward")
}

func TestResolvePartialPriorCell(t *testing.T) {
	prior := &CountData{
		Grid: Grid{
			"Tomatoes": {"Walk-in": "3"}, // no Dry store cell
		},
	}

	resolved := Resolve(larderTemplate(), nil, prior)
	assert.Equal(t, "3", resolved.Grid["Tomatoes"]["Walk-in"])
	assert.Equal(t, "", resolved.Grid["Tomatoes"]["Dry store"])
}

func TestResolveExistingCountWinsOverPrior(t *testing.T) {
	existing := &CountData{
		Grid:      Grid{"Tomatoes": {"Walk-in": "7"}},
		Checklist: []models.PrepTaskState{{Name: "Dice onions", Done: true}},
		Notes:     "mid-count",
	}
	prior := &CountData{
		Grid: Grid{"Tomatoes": {"Walk-in": "999"}},
	}

	resolved := Resolve(larderTemplate(), existing, prior)

	assert.True(t, resolved.Resumed)
	// returned verbatim: no template expansion, no carry-forward, no reset
	assert.Equal(t, existing.Grid, resolved.Grid)
	assert.Equal(t, existing.Checklist, resolved.Checklist)
	assert.Equal(t, "mid-count", resolved.Notes)
}

func TestUpdateCellIsCopyOnWrite(t *testing.T) {
	grid := Grid{"Tomatoes": {"Walk-in": "3"}}

	updated := UpdateCell(grid, "Tomatoes", "Walk-in", "5")
	assert.Equal(t, "5", updated["Tomatoes"]["Walk-in"])
	assert.Equal(t, "3", grid["Tomatoes"]["Walk-in"], "input grid untouched")

	// writing to an unknown item creates the row
	updated = UpdateCell(grid, "Cream", "Walk-in", "2")
	assert.Equal(t, "2", updated["Cream"]["Walk-in"])
	_, ok := grid["Cream"]
	assert.False(t, ok)
}

func TestToggleTask(t *testing.T) {
	list := []models.PrepTaskState{
		{Name: "Dice onions"},
		{Name: "Make stock"},
	}

	toggled := ToggleTask(list, 1)
	assert.True(t, toggled[1].Done)
	assert.False(t, list[1].Done, "input untouched")

	back := ToggleTask(toggled, 1)
	assert.False(t, back[1].Done)

	assert.Equal(t, list, ToggleTask(list, -1))
	assert.Equal(t, list, ToggleTask(list, 2))
}
