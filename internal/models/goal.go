package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal lifecycle states. Only active→completed is automated (by the periodic
// progress scan); failed and abandoned are set by user action.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusFailed    = "failed"
	GoalStatusAbandoned = "abandoned"
)

// Kinds of trackable goals.
const (
	GoalTypeWeight           = "weight"
	GoalTypeCalories         = "calories"
	GoalTypeWorkoutFrequency = "workout_frequency"
	GoalTypeWater            = "water"
	GoalTypeSleep            = "sleep"
)

type Goal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_goals_user_status" json:"user_id"`

	GoalType    string `gorm:"size:20;not null" json:"goal_type"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	TargetValue  float64 `gorm:"not null" json:"target_value"`
	CurrentValue float64 `gorm:"not null;default:0" json:"current_value"`

	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	TargetDate    time.Time  `gorm:"type:date;not null" json:"target_date"`
	CompletedDate *time.Time `gorm:"type:date" json:"completed_date"`

	Status string `gorm:"size:20;not null;default:'active';index:idx_goals_user_status" json:"status"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// ProgressPercentage is capped at 100 and is 0 for non-positive targets.
func (g *Goal) ProgressPercentage() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	pct := g.CurrentValue / g.TargetValue * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ValidGoalType reports whether goalType is one of the trackable kinds.
func ValidGoalType(goalType string) bool {
	switch goalType {
	case GoalTypeWeight, GoalTypeCalories, GoalTypeWorkoutFrequency, GoalTypeWater, GoalTypeSleep:
		return true
	}
	return false
}
