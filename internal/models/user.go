package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Gender values accepted on a profile.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Activity levels, one of five fixed multiplier tiers.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Goals a profile can be calibrated toward.
const (
	GoalWeightLoss  = "weight_loss"
	GoalMaintenance = "maintenance"
	GoalMuscleGain  = "muscle_gain"
)

// UserProfile holds body measurements and the health metrics derived from
// them. The derived fields (BMR, TDEE and the four daily targets) are always
// a function of gender/height/weight/age/activity level/goal and only change
// through a recalculation.
type UserProfile struct {
	ID            uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Gender        string     `gorm:"size:1;not null" json:"gender"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	HeightCm      float64    `gorm:"not null" json:"height"`
	WeightKg      float64    `gorm:"not null" json:"weight"`
	ActivityLevel string     `gorm:"size:20;not null;default:'sedentary'" json:"activity_level"`
	Goal          string     `gorm:"size:20;not null;default:'maintenance'" json:"goal"`
	TargetWeight  *float64   `json:"target_weight"`

	BMR                *float64 `json:"bmr"`
	TDEE               *float64 `json:"tdee"`
	DailyCalorieTarget *int     `json:"daily_calorie_target"`
	DailyProteinTarget *int     `json:"daily_protein_target"`
	DailyCarbsTarget   *int     `json:"daily_carbs_target"`
	DailyFatTarget     *int     `json:"daily_fat_target"`

	Timezone             string `gorm:"size:50;default:'UTC'" json:"timezone"`
	Language             string `gorm:"size:10;default:'en'" json:"language"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Age derives the profile's age in whole years from the birth date, or nil
// when no birth date is recorded.
func (p *UserProfile) Age(now time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return &age
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// ValidActivityLevel reports whether level names one of the five tiers.
func ValidActivityLevel(level string) bool {
	switch level {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// ValidGoal reports whether goal names one of the three calibration goals.
func ValidGoal(goal string) bool {
	switch goal {
	case GoalWeightLoss, GoalMaintenance, GoalMuscleGain:
		return true
	}
	return false
}
