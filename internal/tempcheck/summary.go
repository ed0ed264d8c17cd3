package tempcheck

import "kitchenops-backend/internal/models"

// ArchiveSummary: compliance counts over a set of log entries.
type ArchiveSummary struct {
	Total   int `json:"total"`
	Pass    int `json:"pass"`
	Warning int `json:"warning"`
	Fail    int `json:"fail"`
}

// Summarize counts statuses by exact match. Entries with a missing or
// unrecognized status contribute to the total only, so
// pass + warning + fail <= total always holds.
func Summarize(logs []models.TemperatureLogEntry) ArchiveSummary {
	s := ArchiveSummary{Total: len(logs)}
	for _, l := range logs {
		switch l.Status {
		case models.StatusPass:
			s.Pass++
		case models.StatusWarning:
			s.Warning++
		case models.StatusFail:
			s.Fail++
		}
	}
	return s
}
