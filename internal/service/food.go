package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/models"
)

const (
	foodSearchCacheTTL   = 5 * time.Minute
	defaultSearchLimit   = 20
	maxSearchResultLimit = 100
)

// FoodService handles the food catalog: search, barcode lookup and custom
// food creation. Search results are cached; the cache is advisory only.
type FoodService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewFoodService(db *gorm.DB, c cache.Cache) *FoodService {
	return &FoodService{db: db, cache: c}
}

// SearchFoods matches query against food names and brands. Private foods are
// only visible to their creator; verified foods sort first.
func (s *FoodService) SearchFoods(ctx context.Context, query string, userID *uuid.UUID, limit int) ([]models.Food, error) {
	if limit <= 0 || limit > maxSearchResultLimit {
		limit = defaultSearchLimit
	}

	scope := "public"
	if userID != nil {
		scope = userID.String()
	}
	key := fmt.Sprintf("food_search:%s:%s", query, scope)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []models.Food
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	like := "%" + strings.ToLower(query) + "%"
	dbQuery := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
	if userID != nil {
		dbQuery = dbQuery.Where("is_public = ? OR created_by_id = ?", true, *userID)
	} else {
		dbQuery = dbQuery.Where("is_public = ?", true)
	}

	var foods []models.Food
	err := dbQuery.Order("is_verified DESC").Order("name ASC").Limit(limit).Find(&foods).Error
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(foods); err == nil {
		if err := s.cache.Set(ctx, key, data, foodSearchCacheTTL); err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("food_search_cache_set_failed")
		}
	}

	return foods, nil
}

// GetFood fetches a food by ID.
func (s *FoodService) GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("food")
		}
		return nil, err
	}
	return &food, nil
}

// GetFoodByBarcode fetches a food by its barcode.
func (s *FoodService) GetFoodByBarcode(ctx context.Context, barcode string) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).Where("barcode = ?", barcode).First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("food")
		}
		return nil, err
	}
	return &food, nil
}

// CreateCustomFood adds a private food to the catalog for userID. Nutrition
// values are per 100g and must be non-negative.
func (s *FoodService) CreateCustomFood(ctx context.Context, userID uuid.UUID, food *models.Food) (*models.Food, error) {
	if food.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	for field, value := range map[string]float64{
		"calories": food.Calories,
		"protein":  food.Protein,
		"carbs":    food.Carbs,
		"fat":      food.Fat,
		"fiber":    food.Fiber,
		"sugar":    food.Sugar,
	} {
		if value < 0 {
			return nil, &ValidationError{Field: field, Message: "must not be negative"}
		}
	}
	if food.Barcode != nil && *food.Barcode == "" {
		food.Barcode = nil
	}
	if food.Barcode != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Food{}).Where("barcode = ?", *food.Barcode).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, conflict("barcode already registered")
		}
	}

	food.CreatedByID = &userID
	food.IsPublic = false
	food.IsVerified = false
	if food.ServingSize == 0 {
		food.ServingSize = 100
	}

	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"food_id": food.ID,
	}).Info("custom_food_created")

	return food, nil
}
