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

// CalorieCalculationResult carries the six health metrics derived from a
// profile.
type CalorieCalculationResult struct {
	BMR                float64 `json:"bmr"`
	TDEE               float64 `json:"tdee"`
	DailyCalorieTarget int     `json:"daily_calorie_target"`
	DailyProteinTarget int     `json:"daily_protein_target"`
	DailyCarbsTarget   int     `json:"daily_carbs_target"`
	DailyFatTarget     int     `json:"daily_fat_target"`
}

// ProfileUpdate holds the mutable profile attributes. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Gender        *string
	DateOfBirth   *time.Time
	HeightCm      *float64
	WeightKg      *float64
	ActivityLevel *string
	Goal          *string
	TargetWeight  *float64
}

// ProfileService manages user health profiles and the derivation of their
// health metrics (BMR, TDEE, calorie and macro targets).
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile fetches the health profile for userID.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("profile")
		}
		return nil, err
	}
	return &profile, nil
}

// CreateProfile creates the health profile for userID and derives its
// metrics. A second profile for the same user is a Conflict.
func (s *ProfileService) CreateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserProfile{}).Where("user_id = ?", profile.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflict("profile already exists")
	}

	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}

	if _, err := s.CalculateAndUpdate(ctx, profile.UserID); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, profile.UserID)
}

// UpdateProfile applies the given changes. When any of the six derivation
// inputs (gender, birth date, height, weight, activity level, goal) changed,
// the derived metrics are recomputed; otherwise they are left as they are.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update *ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	inputsChanged := false
	if update.Gender != nil && *update.Gender != profile.Gender {
		profile.Gender = *update.Gender
		inputsChanged = true
	}
	if update.DateOfBirth != nil {
		profile.DateOfBirth = update.DateOfBirth
		inputsChanged = true
	}
	if update.HeightCm != nil && *update.HeightCm != profile.HeightCm {
		profile.HeightCm = *update.HeightCm
		inputsChanged = true
	}
	if update.WeightKg != nil && *update.WeightKg != profile.WeightKg {
		profile.WeightKg = *update.WeightKg
		inputsChanged = true
	}
	if update.ActivityLevel != nil && *update.ActivityLevel != profile.ActivityLevel {
		profile.ActivityLevel = *update.ActivityLevel
		inputsChanged = true
	}
	if update.Goal != nil && *update.Goal != profile.Goal {
		profile.Goal = *update.Goal
		inputsChanged = true
	}
	if update.TargetWeight != nil {
		profile.TargetWeight = update.TargetWeight
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}

	if inputsChanged {
		if _, err := s.CalculateAndUpdate(ctx, userID); err != nil {
			return nil, err
		}
		return s.GetProfile(ctx, userID)
	}
	return profile, nil
}

// CalculateAndUpdate runs the BMR → TDEE → calorie target → macro split
// chain on the profile's current attributes, persists all six derived fields
// and returns them. Returns ErrNotFound when no profile exists.
func (s *ProfileService) CalculateAndUpdate(ctx context.Context, userID uuid.UUID) (*CalorieCalculationResult, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	age := nutrition.DefaultAge
	if a := profile.Age(time.Now()); a != nil {
		age = *a
	}

	bmr := nutrition.BMR(profile.WeightKg, profile.HeightCm, age, profile.Gender)
	tdee := nutrition.TDEE(bmr, profile.ActivityLevel)
	calorieTarget := nutrition.CalorieTarget(tdee, profile.Goal)
	macros := nutrition.MacroSplit(calorieTarget, profile.Goal)

	profile.BMR = &bmr
	profile.TDEE = &tdee
	profile.DailyCalorieTarget = &calorieTarget
	profile.DailyProteinTarget = &macros.Protein
	profile.DailyCarbsTarget = &macros.Carbs
	profile.DailyFatTarget = &macros.Fat

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"bmr":            bmr,
		"tdee":           tdee,
		"calorie_target": calorieTarget,
	}).Info("calculated_health_metrics")

	return &CalorieCalculationResult{
		BMR:                bmr,
		TDEE:               tdee,
		DailyCalorieTarget: calorieTarget,
		DailyProteinTarget: macros.Protein,
		DailyCarbsTarget:   macros.Carbs,
		DailyFatTarget:     macros.Fat,
	}, nil
}

func validateProfile(profile *models.UserProfile) error {
	if !models.ValidGender(profile.Gender) {
		return &ValidationError{Field: "gender", Message: "must be M, F or O"}
	}
	if !models.ValidActivityLevel(profile.ActivityLevel) {
		return &ValidationError{Field: "activity_level", Message: "unknown activity level"}
	}
	if !models.ValidGoal(profile.Goal) {
		return &ValidationError{Field: "goal", Message: "unknown goal"}
	}
	if profile.HeightCm <= 0 || profile.HeightCm > 300 {
		return &ValidationError{Field: "height", Message: "must be between 0 and 300 cm"}
	}
	if profile.WeightKg <= 0 || profile.WeightKg > 500 {
		return &ValidationError{Field: "weight", Message: "must be between 0 and 500 kg"}
	}
	if profile.DateOfBirth != nil && profile.DateOfBirth.After(time.Now()) {
		return &ValidationError{Field: "date_of_birth", Message: "must not be in the future"}
	}
	return nil
}
