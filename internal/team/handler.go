package team

import (
	"fmt"
	"strings"

	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/auth"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type StaffResponse struct {
	ID        uint   `json:"id"`
	OrgID     *uint  `json:"org_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OrgID    *uint  `json:"org_id"` // super_admin only
}

type UpdateStaffRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Active   *bool   `json:"active"`
}

func toStaffResponse(u models.User) StaffResponse {
	return StaffResponse{
		ID:        u.ID,
		OrgID:     u.OrgID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
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

// POST /api/team
// Password is returned once on creation, afterwards only the hash exists.
func CreateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
		}

		orgID, err := resolveOrgIDFromBodyOrRole(c, body.OrgID)
		if err != nil {
			return err
		}

		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "This email is already registered")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			OrgID:        &orgID,
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStaff,
			Active:       true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create staff member")
		}

		actorID, actorName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      actorID,
				UserName:    actorName,
				EntityType:  "user",
				EntityID:    user.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Staff member added: %s", user.Name),
				Before:      nil,
				After:       toStaffResponse(user),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"org_id":   user.OrgID,
			"password": body.Password, // shown once
		})
	}
}

// GET /api/team?include_inactive=true
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("org_id = ?", orgID)
		if c.Query("include_inactive") != "true" {
			dbq = dbq.Where("active = true")
		}

		var users []models.User
		if err := dbq.Order("created_at DESC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list staff")
		}

		res := make([]StaffResponse, 0, len(users))
		for _, u := range users {
			res = append(res, toStaffResponse(u))
		}

		return c.JSON(res)
	}
}

// PUT /api/team/:id
func UpdateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}
		if user.OrgID == nil || *user.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Staff member belongs to another organization")
		}
		if user.Role == models.RoleSuperAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Super admins cannot be managed here")
		}

		var body UpdateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := toStaffResponse(user)

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			user.Name = name
		}
		if body.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email cannot be empty")
			}
			var exist models.User
			if err := database.DB.Where("email = ? AND id <> ?", email, user.ID).First(&exist).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "This email is already registered")
			}
			user.Email = email
		}
		if body.Password != nil {
			if len(*body.Password) < 8 {
				return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
			}
			hash, _ := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			user.PasswordHash = string(hash)
		}
		if body.Active != nil {
			user.Active = *body.Active
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update staff member")
		}

		actorID, actorName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      actorID,
				UserName:    actorName,
				EntityType:  "user",
				EntityID:    user.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Staff member updated: %s", user.Name),
				Before:      before,
				After:       toStaffResponse(user),
			})
		}

		return c.JSON(toStaffResponse(user))
	}
}

// DELETE /api/team/:id
// Deactivation only: counts and logs keep their counted_by reference.
func DeactivateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
		}

		orgID, err := resolveOrgIDFromQueryOrRole(c)
		if err != nil {
			return err
		}
		if user.OrgID == nil || *user.OrgID != orgID {
			return fiber.NewError(fiber.StatusForbidden, "Staff member belongs to another organization")
		}
		if user.Role == models.RoleSuperAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Super admins cannot be managed here")
		}

		actorID, _, _ := getUserInfo(c)
		if actorID == user.ID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot deactivate your own account")
		}

		before := toStaffResponse(user)
		user.Active = false

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate staff member")
		}

		actorID, actorName, err := getUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				OrgID:       &orgID,
				UserID:      actorID,
				UserName:    actorName,
				EntityType:  "user",
				EntityID:    user.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Staff member deactivated: %s", user.Name),
				Before:      before,
				After:       toStaffResponse(user),
			})
		}

		return c.JSON(fiber.Map{"message": "Staff member deactivated"})
	}
}
