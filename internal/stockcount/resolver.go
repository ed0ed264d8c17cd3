package stockcount

import "kitchenops-backend/internal/models"

// Grid: item name -> storage location -> counted value. Values stay free text
// ("3", "2.5", "half case"); the count is a human record, not arithmetic.
type Grid map[string]map[string]string

// TemplateSpec: decoded JSONB payloads of a SectionStockTemplate.
type TemplateSpec struct {
	Items     []models.TemplateItem
	Locations []string
	PrepTasks []string
}

// CountData: the editable payload of a nightly count.
type CountData struct {
	Grid      Grid
	Checklist []models.PrepTaskState
	Notes     string
}

// ResolvedCount: the initial in-memory state for a (template, date) pair.
type ResolvedCount struct {
	CountData
	// Resumed is true when a saved count for the date was returned verbatim
	Resumed bool
}

// Resolve produces the initial grid for a template and date.
//
// A count already saved for the date resumes exactly where it left off. With
// no same-date count, stock values carry forward from the most recent prior
// count of the same template, cell by cell, defaulting to "". The prep
// checklist never carries forward: it is rebuilt from the template with every
// task incomplete, and notes reset to empty. Stock is a continuous inventory
// signal; prep resets daily.
func Resolve(tpl TemplateSpec, existingForDate *CountData, mostRecentPrior *CountData) ResolvedCount {
	if existingForDate != nil {
		return ResolvedCount{CountData: *existingForDate, Resumed: true}
	}

	grid := make(Grid, len(tpl.Items))
	for _, item := range tpl.Items {
		row := make(map[string]string, len(tpl.Locations))
		for _, loc := range tpl.Locations {
			value := ""
			if mostRecentPrior != nil {
				if priorRow, ok := mostRecentPrior.Grid[item.Name]; ok {
					if v, ok := priorRow[loc]; ok {
						value = v
					}
				}
			}
			row[loc] = value
		}
		grid[item.Name] = row
	}

	checklist := make([]models.PrepTaskState, 0, len(tpl.PrepTasks))
	for _, task := range tpl.PrepTasks {
		checklist = append(checklist, models.PrepTaskState{Name: task, Done: false})
	}

	return ResolvedCount{
		CountData: CountData{
			Grid:      grid,
			Checklist: checklist,
			Notes:     "",
		},
	}
}

// UpdateCell overwrites one cell and returns a new grid; the input is left
// untouched.
func UpdateCell(g Grid, item, location, value string) Grid {
	out := make(Grid, len(g))
	for itemName, row := range g {
		newRow := make(map[string]string, len(row))
		for loc, v := range row {
			newRow[loc] = v
		}
		out[itemName] = newRow
	}

	if _, ok := out[item]; !ok {
		out[item] = make(map[string]string)
	}
	out[item][location] = value
	return out
}

// ToggleTask flips one checklist entry and returns a new slice. Out-of-range
// indexes are ignored.
func ToggleTask(checklist []models.PrepTaskState, index int) []models.PrepTaskState {
	if index < 0 || index >= len(checklist) {
		return checklist
	}
	out := make([]models.PrepTaskState, len(checklist))
	copy(out, checklist)
	out[index].Done = !out[index].Done
	return out
}
