package tempcheck

import (
	"encoding/json"
	"errors"
	"fmt"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateArchiveRequest struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	OrgID *uint `json:"org_id"` // super_admin only
}

type ArchiveResponse struct {
	ID             uint   `json:"id"`
	OrgID          uint   `json:"org_id"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	TotalCount     int    `json:"total_count"`
	PassCount      int    `json:"pass_count"`
	WarningCount   int    `json:"warning_count"`
	FailCount      int    `json:"fail_count"`
	ArchivedByName string `json:"archived_by_name"`
	CreatedAt      string `json:"created_at"`
}

func toArchiveResponse(a models.MonthlyArchiveSummary) ArchiveResponse {
	return ArchiveResponse{
		ID:             a.ID,
		OrgID:          a.OrgID,
		Year:           a.Year,
		Month:          a.Month,
		TotalCount:     a.TotalCount,
		PassCount:      a.PassCount,
		WarningCount:   a.WarningCount,
		FailCount:      a.FailCount,
		ArchivedByName: a.ArchivedByName,
		CreatedAt:      a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/archives
func CreateArchiveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateArchiveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		archive, err := ArchiveMonth(database.DB, orgID, body.Year, body.Month, userID, userName)
		if err != nil {
			if errors.Is(err, ErrAlreadyArchived) {
				return fiber.NewError(fiber.StatusBadRequest, "This month has already been archived")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		_ = audit.WriteLog(audit.LogOptions{
			OrgID:       &orgID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "monthly_archive",
			EntityID:    archive.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Compliance archive created for %04d-%02d (%d logs)", archive.Year, archive.Month, archive.TotalCount),
			Before:      nil,
			After:       toArchiveResponse(*archive),
		})

		return c.Status(fiber.StatusCreated).JSON(toArchiveResponse(*archive))
	}
}

// GET /api/archives?org_id=1
func ListArchivesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var archives []models.MonthlyArchiveSummary
		if err := database.DB.
			Where("org_id = ?", orgID).
			Order("year DESC, month DESC").
			Find(&archives).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list archives")
		}

		resp := make([]ArchiveResponse, 0, len(archives))
		for _, a := range archives {
			resp = append(resp, toArchiveResponse(a))
		}

		return c.JSON(resp)
	}
}

// GET /api/archives/:id
// Includes the raw log snapshot taken at archive time.
func GetArchiveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var archive models.MonthlyArchiveSummary
		if err := database.DB.First(&archive, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Archive not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && archive.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Archive belongs to another organization")
		}

		snapshot := archive.LogsSnapshot
		if snapshot == "" {
			snapshot = "[]"
		}

		resp := fiber.Map{
			"archive":  toArchiveResponse(archive),
			"snapshot": json.RawMessage(snapshot),
		}

		return c.JSON(resp)
	}
}
