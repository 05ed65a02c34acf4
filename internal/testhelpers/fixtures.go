package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// CreateTestUser inserts an active user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateTestFood inserts a public food with the given per-100g macros.
func CreateTestFood(t *testing.T, db *gorm.DB, name string, calories, protein, carbs, fat float64) *models.Food {
	t.Helper()
	food := models.Food{
		Name:        name,
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
		ServingSize: 100,
		IsPublic:    true,
	}
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("failed to create test food: %v", err)
	}
	return &food
}
