package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal slots a food log entry can belong to.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealTypes lists the four slots in presentation order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ValidMealType reports whether mealType is one of the four fixed slots.
func ValidMealType(mealType string) bool {
	switch mealType {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Food is a catalog entry. Nutrition values are per 100 grams of the food,
// regardless of the default serving size.
type Food struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `gorm:"size:255;not null;index" json:"name"`
	Brand string `gorm:"size:255" json:"brand"`

	Calories float64 `gorm:"not null" json:"calories"`
	Protein  float64 `gorm:"not null" json:"protein"`
	Carbs    float64 `gorm:"not null" json:"carbs"`
	Fat      float64 `gorm:"not null" json:"fat"`
	Fiber    float64 `gorm:"not null;default:0" json:"fiber"`
	Sugar    float64 `gorm:"not null;default:0" json:"sugar"`

	ServingSize float64 `gorm:"not null;default:100" json:"serving_size"`
	Barcode     *string `gorm:"size:50;uniqueIndex" json:"barcode,omitempty"`

	CreatedByID *uuid.UUID `gorm:"type:varchar(36)" json:"created_by"`
	IsVerified  bool       `gorm:"not null;default:false" json:"is_verified"`
	IsPublic    bool       `gorm:"not null;default:true" json:"is_public"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FoodLog records a consumed serving of a food. The macro fields are derived
// from the food's per-100g values at creation time and are never recomputed,
// even if the referenced food changes afterwards.
type FoodLog struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_food_logs_user_date" json:"user_id"`
	FoodID uuid.UUID `gorm:"type:varchar(36);not null" json:"food_id"`
	Food   *Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`

	Date     time.Time `gorm:"type:date;not null;index:idx_food_logs_user_date" json:"date"`
	MealType string    `gorm:"size:20;not null" json:"meal_type"`

	ServingAmount float64 `gorm:"not null" json:"serving_amount"`

	Calories float64 `gorm:"not null" json:"calories"`
	Protein  float64 `gorm:"not null" json:"protein"`
	Carbs    float64 `gorm:"not null" json:"carbs"`
	Fat      float64 `gorm:"not null" json:"fat"`

	Notes string `gorm:"type:text" json:"notes"`
}

func (l *FoodLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// WaterLog is an append-only record of water intake.
type WaterLog struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uuid.UUID `gorm:"type:varchar(36);not null;index:idx_water_logs_user_date" json:"user_id"`
	Date     time.Time `gorm:"type:date;not null;index:idx_water_logs_user_date" json:"date"`
	AmountML int       `gorm:"not null" json:"amount_ml"`
}

func (w *WaterLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// DailySummary is the cached per-user per-day aggregate. It is derived state:
// every field except the target snapshot is reconstructible from the food and
// water logs, so a summary can be deleted and regenerated without data loss.
type DailySummary struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_summaries_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_summaries_user_date" json:"date"`

	TotalCalories float64 `gorm:"not null;default:0" json:"total_calories"`
	TotalProtein  float64 `gorm:"not null;default:0" json:"total_protein"`
	TotalCarbs    float64 `gorm:"not null;default:0" json:"total_carbs"`
	TotalFat      float64 `gorm:"not null;default:0" json:"total_fat"`

	TargetCalories *int `json:"target_calories"`
	TargetProtein  *int `json:"target_protein"`
	TargetCarbs    *int `json:"target_carbs"`
	TargetFat      *int `json:"target_fat"`

	BreakfastCalories float64 `gorm:"not null;default:0" json:"breakfast_calories"`
	LunchCalories     float64 `gorm:"not null;default:0" json:"lunch_calories"`
	DinnerCalories    float64 `gorm:"not null;default:0" json:"dinner_calories"`
	SnackCalories     float64 `gorm:"not null;default:0" json:"snack_calories"`

	WaterIntakeML int      `gorm:"not null;default:0" json:"water_intake_ml"`
	Weight        *float64 `json:"weight"`
}

func (s *DailySummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CaloriePercentage reports consumed calories as a share of the day's target,
// or 0 when no target was snapshotted.
func (s *DailySummary) CaloriePercentage() float64 {
	if s.TargetCalories == nil || *s.TargetCalories == 0 {
		return 0
	}
	return s.TotalCalories / float64(*s.TargetCalories) * 100
}
