package admin

import (
	"fmt"
	"strings"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/auth"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateVendorRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	OrgID        *uint  `json:"org_id"` // super_admin only
}

type UpdateVendorRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Active       *bool   `json:"active"`
}

type VendorResponse struct {
	ID           uint   `json:"id"`
	OrgID        uint   `json:"org_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func resolveOrgIDFromBodyOrRole(c *fiber.Ctx, bodyOrgID *uint) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Role information unavailable")
	}

	if role != models.RoleSuperAdmin {
		oVal := c.Locals(auth.CtxOrgIDKey)
		oPtr, ok := oVal.(*uint)
		if !ok || oPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Organization information unavailable")
		}
		return *oPtr, nil
	}

	if bodyOrgID == nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "org_id is required")
	}
	return *bodyOrgID, nil
}

func resolveOrgIDFromQueryOrRole(c *fiber.Ctx) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Role information unavailable")
	}

	if role != models.RoleSuperAdmin {
		oVal := c.Locals(auth.CtxOrgIDKey)
		oPtr, ok := oVal.(*uint)
		if !ok || oPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Organization information unavailable")
		}
		return *oPtr, nil
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

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "User information unavailable")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}

	return userID, user.Name, nil
}

func toVendorResponse(v models.Vendor) VendorResponse {
	return VendorResponse{
		ID:           v.ID,
		OrgID:        v.OrgID,
		Name:         v.Name,
		Category:     v.Category,
		ContactEmail: v.ContactEmail,
		Phone:        v.Phone,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    v.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/vendors
func CreateVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVendorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Vendor name is required")
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		vendor := models.Vendor{
			OrgID:        orgID,
			Name:         body.Name,
			Category:     strings.TrimSpace(body.Category),
			ContactEmail: strings.ToLower(strings.TrimSpace(body.ContactEmail)),
			Phone:        strings.TrimSpace(body.Phone),
			Active:       true,
		}

		if err := database.DB.Create(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create vendor")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "vendor",
				EntityID:    vendor.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Vendor added: %s", vendor.Name),
				Before:      nil,
				After:       vendor,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toVendorResponse(vendor))
	}
}

// GET /api/vendors?category=Produce&include_inactive=true
func ListVendorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("org_id = ?", orgID)
		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}
		if c.Query("include_inactive") != "true" {
			dbq = dbq.Where("active = true")
		}

		var vendors []models.Vendor
		if err := dbq.Order("name ASC").Find(&vendors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list vendors")
		}

		res := make([]VendorResponse, 0, len(vendors))
		for _, v := range vendors {
			res = append(res, toVendorResponse(v))
		}

		return c.JSON(res)
	}
}

// PUT /api/vendors/:id
func UpdateVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vendor models.Vendor
		if err := database.DB.First(&vendor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && vendor.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Vendor belongs to another organization")
		}

		var body UpdateVendorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := vendor

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Vendor name cannot be empty")
			}
			vendor.Name = name
		}
		if body.Category != nil {
			vendor.Category = strings.TrimSpace(*body.Category)
		}
		if body.ContactEmail != nil {
			vendor.ContactEmail = strings.ToLower(strings.TrimSpace(*body.ContactEmail))
		}
		if body.Phone != nil {
			vendor.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Active != nil {
			vendor.Active = *body.Active
		}

		if err := database.DB.Save(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update vendor")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &vendor.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "vendor",
				EntityID:    vendor.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Vendor updated: %s", vendor.Name),
				Before:      before,
				After:       vendor,
			})
		}

		return c.JSON(toVendorResponse(vendor))
	}
}

// DELETE /api/vendors/:id
func DeleteVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vendor models.Vendor
		if err := database.DB.First(&vendor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err == nil && vendor.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Vendor belongs to another organization")
		}

		if err := database.DB.Delete(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete vendor")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &vendor.OrgID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "vendor",
				EntityID:    vendor.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Vendor deleted: %s", vendor.Name),
				Before:      vendor,
				After:       nil,
			})
		}

		return c.JSON(fiber.Map{"message": "Vendor deleted"})
	}
}
