package database

import (
	"log"

	"kitchenops-backend/internal/config"
	"kitchenops-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected. Migration complete.")
}

// Migrate runs schema migration for every model. Shared with tests that run
// against their own gorm instance.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.CheckLocationConfig{},
		&models.TemperatureLogEntry{},
		&models.SectionStockTemplate{},
		&models.NightlyStockCount{},
		&models.MonthlyArchiveSummary{},
		&models.Recipe{},
		&models.Vendor{},
		&models.AuditLog{},
	)
}
