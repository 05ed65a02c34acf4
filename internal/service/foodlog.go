package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
)

// FoodLogService owns creation and deletion of food log entries. Derived
// macros are computed exactly once at creation; mutations emit a LogChanged
// event so the summary engine can invalidate the affected day.
type FoodLogService struct {
	db     *gorm.DB
	events LogChangedHandler
}

// NewFoodLogService creates a FoodLogService publishing LogChanged events
// to the given handler.
func NewFoodLogService(db *gorm.DB, events LogChangedHandler) *FoodLogService {
	return &FoodLogService{db: db, events: events}
}

// LogFood records a consumed serving of foodID on the given date and meal
// slot. Returns ErrNotFound when the food does not exist and a
// ValidationError for a non-positive serving amount or unknown meal slot.
func (s *FoodLogService) LogFood(ctx context.Context, userID, foodID uuid.UUID, servingAmount float64, mealType string, date time.Time, notes string) (*models.FoodLog, error) {
	if servingAmount <= 0 {
		return nil, &ValidationError{Field: "serving_amount", Message: "must be positive"}
	}
	if !models.ValidMealType(mealType) {
		return nil, &ValidationError{Field: "meal_type", Message: "must be one of breakfast, lunch, dinner, snack"}
	}

	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, "id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("food")
		}
		return nil, err
	}

	derived := nutrition.DeriveServing(nutrition.Macros{
		Calories: food.Calories,
		Protein:  food.Protein,
		Carbs:    food.Carbs,
		Fat:      food.Fat,
	}, servingAmount)

	log := models.FoodLog{
		UserID:        userID,
		FoodID:        food.ID,
		Date:          dateOnly(date),
		MealType:      mealType,
		ServingAmount: servingAmount,
		Calories:      derived.Calories,
		Protein:       derived.Protein,
		Carbs:         derived.Carbs,
		Fat:           derived.Fat,
		Notes:         notes,
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}

	s.events.HandleLogChanged(ctx, LogChanged{UserID: userID, Date: log.Date})

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"food_id":   foodID,
		"date":      log.Date.Format("2006-01-02"),
		"meal_type": mealType,
	}).Info("food_logged")

	return &log, nil
}

// DeleteLog removes a log entry owned by userID and invalidates the day's
// summary. Returns ErrNotFound for an unknown entry and ErrForbidden when
// the entry belongs to another user.
func (s *FoodLogService) DeleteLog(ctx context.Context, userID, logID uuid.UUID) error {
	var log models.FoodLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("food log")
		}
		return err
	}
	if log.UserID != userID {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&log).Error; err != nil {
		return err
	}

	s.events.HandleLogChanged(ctx, LogChanged{UserID: userID, Date: log.Date})

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"log_id":  logID,
	}).Info("food_log_deleted")

	return nil
}

// DailyLogs groups a day's entries by meal slot. Every one of the four
// slots is present in the result; slots without entries map to empty slices.
func (s *FoodLogService) DailyLogs(ctx context.Context, userID uuid.UUID, date time.Time) (map[string][]models.FoodLog, error) {
	var logs []models.FoodLog
	err := s.db.WithContext(ctx).
		Preload("Food").
		Where("user_id = ? AND date = ?", userID, dateOnly(date)).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.FoodLog, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		grouped[mealType] = []models.FoodLog{}
	}
	for _, log := range logs {
		grouped[log.MealType] = append(grouped[log.MealType], log)
	}
	return grouped, nil
}
