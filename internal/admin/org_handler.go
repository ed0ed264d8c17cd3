package admin

import (
	"strings"

	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type OrgResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type CreateOrgRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
}

type UpdateOrgRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

type CreateOrgAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OrgAdminResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	OrgID     *uint  `json:"org_id"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toOrgResponse(org models.Organization) OrgResponse {
	return OrgResponse{
		ID:        org.ID,
		Name:      org.Name,
		Address:   org.Address,
		Phone:     org.Phone,
		Active:    org.Active,
		CreatedAt: org.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/orgs
func CreateOrgHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrgRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Organization name is required")
		}

		org := models.Organization{
			Name:    body.Name,
			Address: body.Address,
			Active:  true,
		}
		if body.Phone != nil {
			org.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Create(&org).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create organization")
		}

		return c.Status(fiber.StatusCreated).JSON(toOrgResponse(org))
	}
}

// GET /api/admin/orgs
func ListOrgsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orgs []models.Organization
		if err := database.DB.Order("name ASC").Find(&orgs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list organizations")
		}

		res := make([]OrgResponse, 0, len(orgs))
		for _, org := range orgs {
			res = append(res, toOrgResponse(org))
		}

		return c.JSON(res)
	}
}

// GET /api/admin/orgs/:id
func GetOrgHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var org models.Organization
		if err := database.DB.First(&org, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Organization not found")
		}

		return c.JSON(toOrgResponse(org))
	}
}

// PUT /api/admin/orgs/:id
func UpdateOrgHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var org models.Organization
		if err := database.DB.First(&org, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Organization not found")
		}

		var body UpdateOrgRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Organization name cannot be empty")
			}
			org.Name = name
		}
		if body.Address != nil {
			org.Address = *body.Address
		}
		if body.Phone != nil {
			org.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Active != nil {
			org.Active = *body.Active
		}

		if err := database.DB.Save(&org).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update organization")
		}

		return c.JSON(toOrgResponse(org))
	}
}

// DELETE /api/admin/orgs/:id
// Deactivation only: compliance history must survive the tenant.
func DeactivateOrgHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var org models.Organization
		if err := database.DB.First(&org, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Organization not found")
		}

		org.Active = false
		if err := database.DB.Save(&org).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate organization")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/admin/orgs/:id/admins
func CreateOrgAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var org models.Organization
		if err := database.DB.First(&org, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Organization not found")
		}

		var body CreateOrgAdminRequest
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

		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "This email is already registered")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			OrgID:        &org.ID,
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleOrgAdmin,
			Active:       true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create organization admin")
		}

		// password is returned once, afterwards only the hash exists
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"org_id":   user.OrgID,
			"password": body.Password,
		})
	}
}

// GET /api/admin/orgs/:id/admins
func ListOrgAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.
			Where("org_id = ? AND role = ?", c.Params("id"), models.RoleOrgAdmin).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list organization admins")
		}

		res := make([]OrgAdminResponse, 0, len(users))
		for _, u := range users {
			res = append(res, OrgAdminResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				OrgID:     u.OrgID,
				Active:    u.Active,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
				UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
