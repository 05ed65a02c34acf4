package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// GoalService manages user goals and the periodic scan that completes them.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// CreateGoal validates and persists a new goal in the active state.
func (s *GoalService) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if !models.ValidGoalType(goal.GoalType) {
		return nil, &ValidationError{Field: "goal_type", Message: "unknown goal type"}
	}
	if goal.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if goal.TargetValue <= 0 {
		return nil, &ValidationError{Field: "target_value", Message: "must be positive"}
	}
	if goal.TargetDate.Before(goal.StartDate) {
		return nil, &ValidationError{Field: "target_date", Message: "must not precede start date"}
	}
	goal.Status = models.GoalStatusActive

	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// ListGoals returns a user's goals, optionally filtered by status.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID, status string) ([]models.Goal, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var goals []models.Goal
	if err := query.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// UpdateProgress sets the current value of a goal owned by userID.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.WithContext(ctx).First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("goal")
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}

	goal.CurrentValue = currentValue
	if err := s.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateStatus moves a goal to an externally driven state (failed or
// abandoned). Completion is owned by the progress scan.
func (s *GoalService) UpdateStatus(ctx context.Context, userID, goalID uuid.UUID, status string) (*models.Goal, error) {
	if status != models.GoalStatusFailed && status != models.GoalStatusAbandoned {
		return nil, &ValidationError{Field: "status", Message: "must be failed or abandoned"}
	}

	var goal models.Goal
	if err := s.db.WithContext(ctx).First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("goal")
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}

	goal.Status = status
	if err := s.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// CheckProgress scans all active goals and completes those whose current
// value has reached the target. A failure on one goal is logged and does not
// abort the scan. Returns the number of goals checked and completed.
func (s *GoalService) CheckProgress(ctx context.Context) (checked, completed int, err error) {
	var goals []models.Goal
	if err := s.db.WithContext(ctx).Where("status = ?", models.GoalStatusActive).Find(&goals).Error; err != nil {
		return 0, 0, err
	}

	today := dateOnly(time.Now())
	for i := range goals {
		goal := &goals[i]
		checked++
		if goal.CurrentValue < goal.TargetValue {
			continue
		}
		goal.Status = models.GoalStatusCompleted
		goal.CompletedDate = &today
		if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"goal_id": goal.ID,
				"error":   err.Error(),
			}).Error("failed_to_complete_goal")
			continue
		}
		completed++
	}

	logrus.WithFields(logrus.Fields{
		"checked":   checked,
		"completed": completed,
	}).Info("goal_progress_checked")

	return checked, completed, nil
}
