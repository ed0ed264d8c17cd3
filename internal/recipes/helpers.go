package recipes

import (
	"fmt"

	"kitchenops-backend/internal/auth"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

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
