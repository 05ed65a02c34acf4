package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// Migrate brings the schema up to date for all application models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Food{},
		&models.FoodLog{},
		&models.WaterLog{},
		&models.DailySummary{},
		&models.Goal{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
