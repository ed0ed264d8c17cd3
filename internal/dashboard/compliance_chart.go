package dashboard

import (
	"fmt"
	"time"

	"kitchenops-backend/internal/auth"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ComplianceChartPoint struct {
	Label   string `json:"label"` // date / week start / month start
	Pass    int64  `json:"pass"`
	Warning int64  `json:"warning"`
	Fail    int64  `json:"fail"`
	Total   int64  `json:"total"`
}

type ComplianceGrandTotals struct {
	Pass    int64 `json:"pass"`
	Warning int64 `json:"warning"`
	Fail    int64 `json:"fail"`
	Total   int64 `json:"total"`
}

type ComplianceChartResponse struct {
	OrgID       uint                   `json:"org_id"`
	Period      string                 `json:"period"` // daily | weekly | monthly
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Points      []ComplianceChartPoint `json:"points"`
	GrandTotals ComplianceGrandTotals  `json:"grand_totals"`
}

func getOrgIDFromContext(c *fiber.Ctx) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Role information unavailable")
	}

	if role != models.RoleSuperAdmin {
		orgIDVal := c.Locals(auth.CtxOrgIDKey)
		orgIDPtr, ok := orgIDVal.(*uint)
		if !ok || orgIDPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Organization information unavailable")
		}
		return *orgIDPtr, nil
	}

	oidStr := c.Query("org_id")
	if oidStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "org_id is required")
	}
	var oid uint
	if _, err := fmt.Sscan(oidStr, &oid); err != nil || oid == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "org_id is invalid")
	}
	return oid, nil
}

// chartWindow computes the [start, queryEnd] range for a chart request.
// Daily and weekly windows are inclusive of queryEnd; the monthly window is
// exclusive (date < queryEnd) so the last day of the final month still
// counts. displayTo is the inclusive label for the response.
func chartWindow(period string, count int, now time.Time) (start, queryEnd, displayTo time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case "weekly":
		days := 7 * (count - 1)
		start = end.AddDate(0, 0, -days)
		return start, end, end
	case "monthly":
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = firstOfMonth.AddDate(0, -(count - 1), 0)
		queryEnd = start.AddDate(0, count, 0)
		return start, queryEnd, queryEnd.AddDate(0, 0, -1)
	default: // daily
		start = end.AddDate(0, 0, -(count - 1))
		return start, end, end
	}
}

// GET /api/dashboard/compliance-chart?period=daily&count=7&org_id=1
// Buckets temperature logs by day, ISO week or month and counts outcomes.
func ComplianceChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := getOrgIDFromContext(c)
		if err != nil {
			return err
		}

		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count is invalid")
			}
		}

		if period != "weekly" && period != "monthly" {
			period = "daily"
		}

		start, queryEnd, displayTo := chartWindow(period, count, time.Now().UTC())

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Status string    `gorm:"column:status"`
			Total  int64     `gorm:"column:total"`
		}
		var rows []row

		var sql string
		switch period {
		case "weekly":
			sql = `
				SELECT date_trunc('week', date)::date AS bucket,
					   status,
					   COUNT(*) AS total
				FROM temperature_log_entries
				WHERE org_id = ? AND date >= ? AND date <= ?
				GROUP BY bucket, status
				ORDER BY bucket ASC;
			`
		case "monthly":
			sql = `
				SELECT date_trunc('month', date)::date AS bucket,
					   status,
					   COUNT(*) AS total
				FROM temperature_log_entries
				WHERE org_id = ? AND date >= ? AND date < ?
				GROUP BY bucket, status
				ORDER BY bucket ASC;
			`
		default: // daily
			sql = `
				SELECT date::date AS bucket,
					   status,
					   COUNT(*) AS total
				FROM temperature_log_entries
				WHERE org_id = ? AND date >= ? AND date <= ?
				GROUP BY bucket, status
				ORDER BY bucket ASC;
			`
		}

		if err := database.DB.Raw(sql, orgID, start, queryEnd).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not aggregate compliance data")
		}

		type bucketAgg struct {
			Bucket  time.Time
			Pass    int64
			Warning int64
			Fail    int64
			Total   int64
		}

		buckets := make(map[time.Time]*bucketAgg)

		for _, r := range rows {
			agg, ok := buckets[r.Bucket]
			if !ok {
				agg = &bucketAgg{Bucket: r.Bucket}
				buckets[r.Bucket] = agg
			}

			// unknown readings count toward the total only
			switch r.Status {
			case string(models.StatusPass):
				agg.Pass += r.Total
			case string(models.StatusWarning):
				agg.Warning += r.Total
			case string(models.StatusFail):
				agg.Fail += r.Total
			}
			agg.Total += r.Total
		}

		ordered := make([]bucketAgg, 0, len(buckets))
		for _, v := range buckets {
			ordered = append(ordered, *v)
		}

		for i := 0; i < len(ordered); i++ {
			for j := i + 1; j < len(ordered); j++ {
				if ordered[j].Bucket.Before(ordered[i].Bucket) {
					ordered[i], ordered[j] = ordered[j], ordered[i]
				}
			}
		}

		points := make([]ComplianceChartPoint, 0, len(ordered))
		grand := ComplianceGrandTotals{}

		for _, b := range ordered {
			points = append(points, ComplianceChartPoint{
				Label:   b.Bucket.Format("2006-01-02"),
				Pass:    b.Pass,
				Warning: b.Warning,
				Fail:    b.Fail,
				Total:   b.Total,
			})

			grand.Pass += b.Pass
			grand.Warning += b.Warning
			grand.Fail += b.Fail
			grand.Total += b.Total
		}

		return c.JSON(ComplianceChartResponse{
			OrgID:       orgID,
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          displayTo.Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		})
	}
}
