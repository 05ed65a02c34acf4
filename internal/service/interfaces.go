package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/models"
)

// IFoodService defines the food catalog operations.
type IFoodService interface {
	SearchFoods(ctx context.Context, query string, userID *uuid.UUID, limit int) ([]models.Food, error)
	GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error)
	GetFoodByBarcode(ctx context.Context, barcode string) (*models.Food, error)
	CreateCustomFood(ctx context.Context, userID uuid.UUID, food *models.Food) (*models.Food, error)
}

// IFoodLogService defines food log creation, deletion and grouping.
type IFoodLogService interface {
	LogFood(ctx context.Context, userID, foodID uuid.UUID, servingAmount float64, mealType string, date time.Time, notes string) (*models.FoodLog, error)
	DeleteLog(ctx context.Context, userID, logID uuid.UUID) error
	DailyLogs(ctx context.Context, userID uuid.UUID, date time.Time) (map[string][]models.FoodLog, error)
}

// ISummaryService defines the daily aggregate operations.
type ISummaryService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailySummary, error)
	Recalculate(ctx context.Context, summary *models.DailySummary) error
	Invalidate(ctx context.Context, userID uuid.UUID, date time.Time)
	GetPeriodStats(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*PeriodStats, error)
}

// IWaterService defines water intake operations.
type IWaterService interface {
	LogWater(ctx context.Context, userID uuid.UUID, amountML int, date time.Time) (*models.WaterLog, int, error)
	DailyWaterIntake(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)
}

// IProfileService defines health profile operations.
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update *ProfileUpdate) (*models.UserProfile, error)
	CalculateAndUpdate(ctx context.Context, userID uuid.UUID) (*CalorieCalculationResult, error)
}

// IGoalService defines goal operations.
type IGoalService interface {
	CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID, status string) ([]models.Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (*models.Goal, error)
	UpdateStatus(ctx context.Context, userID, goalID uuid.UUID, status string) (*models.Goal, error)
	CheckProgress(ctx context.Context) (checked, completed int, err error)
}

// IAuthService defines authentication operations.
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ValidateToken(token string) (*TokenClaims, error)
}

var (
	_ IFoodService    = (*FoodService)(nil)
	_ IFoodLogService = (*FoodLogService)(nil)
	_ ISummaryService = (*SummaryService)(nil)
	_ IWaterService   = (*WaterService)(nil)
	_ IProfileService = (*ProfileService)(nil)
	_ IGoalService    = (*GoalService)(nil)
	_ IAuthService    = (*AuthService)(nil)
)
