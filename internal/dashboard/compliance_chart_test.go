package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func utcDay(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestChartWindowDaily(t *testing.T) {
	start, queryEnd, displayTo := chartWindow("daily", 7, utcDay("2026-08-15"))

	assert.Equal(t, utcDay("2026-08-09"), start)
	assert.Equal(t, utcDay("2026-08-15"), queryEnd)
	assert.Equal(t, queryEnd, displayTo)
}

func TestChartWindowWeekly(t *testing.T) {
	start, queryEnd, _ := chartWindow("weekly", 8, utcDay("2026-08-15"))

	assert.Equal(t, utcDay("2026-06-27"), start)
	assert.Equal(t, utcDay("2026-08-15"), queryEnd)
}

func TestChartWindowMonthlyIncludesLastDay(t *testing.T) {
	start, queryEnd, displayTo := chartWindow("monthly", 3, utcDay("2026-08-15"))

	assert.Equal(t, utcDay("2026-06-01"), start)
	// exclusive bound: a reading on the last day of the window still matches
	// date < queryEnd
	assert.Equal(t, utcDay("2026-09-01"), queryEnd)
	assert.True(t, utcDay("2026-08-31").Before(queryEnd))
	assert.Equal(t, utcDay("2026-08-31"), displayTo)
}

func TestChartWindowUsesUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 8, 15, 22, 30, 0, 0, est)

	for _, period := range []string{"daily", "weekly", "monthly"} {
		start, queryEnd, displayTo := chartWindow(period, 2, now.UTC())
		assert.Equal(t, time.UTC, start.Location(), period)
		assert.Equal(t, time.UTC, queryEnd.Location(), period)
		assert.Equal(t, time.UTC, displayTo.Location(), period)
	}
}
