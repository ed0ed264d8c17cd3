package tempcheck

import (
	"strconv"
	"strings"

	"kitchenops-backend/internal/models"
)

// CheckEntry: one editable row of a daily check session. A row is saved when
// a log entry for its config already exists for the shift and date; editing
// the value always clears the flag again.
type CheckEntry struct {
	ConfigID uint
	Name     string
	ZoneType models.ZoneType
	Shift    models.Shift

	RawValue string
	Value    *float64
	Status   *models.CheckStatus
	Saved    bool
	LogID    *uint
}

// ParseReading converts raw user input to a float. Empty or unparseable text
// yields no value, which is "not yet read" rather than non-compliant.
func ParseReading(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LoadSession materializes one row per config, pre-filled from any log entry
// already saved for the same shift and date. Logs are matched to rows by
// config ID; a row with a matching log is read-only until its value changes.
func LoadSession(configs []models.CheckLocationConfig, todaysLogs []models.TemperatureLogEntry) []CheckEntry {
	logByConfig := make(map[uint]models.TemperatureLogEntry, len(todaysLogs))
	for _, l := range todaysLogs {
		// first log per config wins (lists arrive newest-first)
		if _, ok := logByConfig[l.ConfigID]; !ok {
			logByConfig[l.ConfigID] = l
		}
	}

	entries := make([]CheckEntry, 0, len(configs))
	for _, cfg := range configs {
		entry := CheckEntry{
			ConfigID: cfg.ID,
			Name:     cfg.Name,
			ZoneType: cfg.ZoneType,
			Shift:    cfg.Shift,
		}

		if l, ok := logByConfig[cfg.ID]; ok {
			v := l.Value
			st := l.Status
			id := l.ID
			entry.RawValue = strconv.FormatFloat(l.Value, 'f', -1, 64)
			entry.Value = &v
			entry.Status = &st
			entry.Saved = true
			entry.LogID = &id
		}

		entries = append(entries, entry)
	}

	return entries
}

// UpdateValue applies an edit to one row and returns a new slice. Parse
// failure clears value and status; success classifies against the row's zone
// type. Either way the saved flag is cleared until the row is re-submitted.
// Out-of-range indexes are ignored.
func UpdateValue(entries []CheckEntry, index int, rawText string) []CheckEntry {
	if index < 0 || index >= len(entries) {
		return entries
	}

	out := make([]CheckEntry, len(entries))
	copy(out, entries)

	e := &out[index]
	e.RawValue = rawText
	e.Saved = false
	e.LogID = nil

	v, ok := ParseReading(rawText)
	if !ok {
		e.Value = nil
		e.Status = nil
		return out
	}

	st := Classify(v, e.ZoneType)
	e.Value = &v
	e.Status = &st
	return out
}

// SaveCandidates filters to the rows eligible for a batch save: non-empty,
// not yet saved, and with a parseable value. Unparseable rows are skipped
// entirely, they are never defaulted to a compliant status.
func SaveCandidates(entries []CheckEntry) []CheckEntry {
	out := make([]CheckEntry, 0, len(entries))
	for _, e := range entries {
		if e.Saved {
			continue
		}
		if strings.TrimSpace(e.RawValue) == "" {
			continue
		}
		if e.Value == nil || e.Status == nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Completed counts saved rows.
func Completed(entries []CheckEntry) int {
	n := 0
	for _, e := range entries {
		if e.Saved {
			n++
		}
	}
	return n
}

// AllComplete holds when every row is either saved or left blank. A blank row
// is an intentionally skipped check and does not block completion.
func AllComplete(entries []CheckEntry) bool {
	for _, e := range entries {
		if !e.Saved && strings.TrimSpace(e.RawValue) != "" {
			return false
		}
	}
	return true
}
