package main

import (
	"strings"

	"kitchenops-backend/internal/admin"
	"kitchenops-backend/internal/audit"
	"kitchenops-backend/internal/auth"
	"kitchenops-backend/internal/config"
	"kitchenops-backend/internal/dashboard"
	"kitchenops-backend/internal/database"
	"kitchenops-backend/internal/models"
	"kitchenops-backend/internal/recipes"
	"kitchenops-backend/internal/scheduler"
	"kitchenops-backend/internal/stockcount"
	"kitchenops-backend/internal/team"
	"kitchenops-backend/internal/tempcheck"
	"kitchenops-backend/internal/vision"
	visionclient "kitchenops-backend/pkg/clients/vision"
	"kitchenops-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	var vc visionclient.Client
	if cfg.AIAPIKey != "" {
		vc = visionclient.NewClient(cfg.AIAPIKey, cfg.AIModel)
	}

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Organization management
	adminRoutes.Post("/orgs", admin.CreateOrgHandler())
	adminRoutes.Get("/orgs", admin.ListOrgsHandler())
	adminRoutes.Get("/orgs/:id", admin.GetOrgHandler())
	adminRoutes.Put("/orgs/:id", admin.UpdateOrgHandler())
	adminRoutes.Delete("/orgs/:id", admin.DeactivateOrgHandler())
	adminRoutes.Post("/orgs/:id/admins", admin.CreateOrgAdminHandler())
	adminRoutes.Get("/orgs/:id/admins", admin.ListOrgAdminsHandler())

	// Team management (org admins and super admins)
	teamRoutes := protected.Group("/team")
	teamRoutes.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin))
	teamRoutes.Post("/", team.CreateStaffHandler())
	teamRoutes.Get("/", team.ListStaffHandler())
	teamRoutes.Put("/:id", team.UpdateStaffHandler())
	teamRoutes.Delete("/:id", team.DeactivateStaffHandler())

	// Check location configuration
	protected.Get("/check-configs", tempcheck.ListCheckConfigsHandler())
	protected.Post("/check-configs", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), tempcheck.CreateCheckConfigHandler())
	protected.Put("/check-configs/:id", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), tempcheck.UpdateCheckConfigHandler())
	protected.Delete("/check-configs/:id", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), tempcheck.DeleteCheckConfigHandler())

	// Temperature checks
	protected.Get("/temperature-checks/session", tempcheck.GetSessionHandler())
	protected.Post("/temperature-checks", tempcheck.SaveChecksHandler())
	protected.Get("/temperature-logs", tempcheck.ListLogsHandler())

	// Monthly archives
	protected.Post("/archives", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), tempcheck.CreateArchiveHandler())
	protected.Get("/archives", tempcheck.ListArchivesHandler())
	protected.Get("/archives/:id", tempcheck.GetArchiveHandler())
	protected.Get("/archives/:id/export", tempcheck.ExportArchiveHandler())

	// Stock templates
	protected.Post("/stock-templates", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), stockcount.CreateTemplateHandler())
	protected.Get("/stock-templates", stockcount.ListTemplatesHandler())
	protected.Get("/stock-templates/:id", stockcount.GetTemplateHandler())
	protected.Put("/stock-templates/:id", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), stockcount.UpdateTemplateHandler())
	protected.Delete("/stock-templates/:id", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), stockcount.DeleteTemplateHandler())
	protected.Post("/stock-templates/:id/items/import", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), stockcount.ImportTemplateItemsHandler())

	// Nightly stock counts
	protected.Get("/stock-counts", stockcount.GetCountHandler())
	protected.Post("/stock-counts", stockcount.SaveCountHandler())
	protected.Get("/stock-counts/history", stockcount.ListCountsHandler())

	// Recipes
	protected.Post("/recipes", recipes.CreateRecipeHandler())
	protected.Get("/recipes", recipes.ListRecipesHandler())
	protected.Get("/recipes/:id", recipes.GetRecipeHandler())
	protected.Put("/recipes/:id", recipes.UpdateRecipeHandler())
	protected.Delete("/recipes/:id", recipes.DeleteRecipeHandler())

	// Vendors
	protected.Post("/vendors", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), admin.CreateVendorHandler())
	protected.Get("/vendors", admin.ListVendorsHandler())
	protected.Put("/vendors/:id", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), admin.UpdateVendorHandler())
	protected.Delete("/vendors/:id", auth.RequireRole(models.RoleSuperAdmin, models.RoleOrgAdmin), admin.DeleteVendorHandler())

	// Vision helpers
	protected.Post("/vision/temperature-read", vision.TemperatureReadHandler(vc))
	protected.Post("/vision/invoice-scan", vision.InvoiceScanHandler(vc))

	// Dashboard
	protected.Get("/dashboard/compliance-chart", dashboard.ComplianceChartHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	if cfg.ArchiveCronEnabled {
		sched := scheduler.NewScheduler(database.DB, logger.Named(log, "scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
