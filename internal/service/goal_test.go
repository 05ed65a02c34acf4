package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/testhelpers"
)

func newGoal(user *models.User, goalType string, target float64) *models.Goal {
	return &models.Goal{
		UserID:      user.ID,
		GoalType:    goalType,
		Title:       "test goal",
		TargetValue: target,
		StartDate:   time.Now(),
		TargetDate:  time.Now().AddDate(0, 1, 0),
	}
}

func TestCreateGoalValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	goals := NewGoalService(db)

	bad := newGoal(user, "steps", 10000)
	_, err := goals.CreateGoal(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = newGoal(user, models.GoalTypeWater, 0)
	_, err = goals.CreateGoal(ctx, bad)
	assert.True(t, IsValidation(err))

	good := newGoal(user, models.GoalTypeWater, 2000)
	created, err := goals.CreateGoal(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, created.Status)
}

func TestGoalProgressPercentage(t *testing.T) {
	goal := models.Goal{TargetValue: 200, CurrentValue: 50}
	assert.Equal(t, 25.0, goal.ProgressPercentage())

	goal.CurrentValue = 400
	assert.Equal(t, 100.0, goal.ProgressPercentage())

	goal.TargetValue = 0
	assert.Equal(t, 0.0, goal.ProgressPercentage())
}

func TestCheckProgressCompletesReachedGoals(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	goals := NewGoalService(db)

	reached := newGoal(user, models.GoalTypeWater, 2000)
	reached.CurrentValue = 2000
	_, err := goals.CreateGoal(ctx, reached)
	require.NoError(t, err)

	pending := newGoal(user, models.GoalTypeCalories, 2200)
	pending.CurrentValue = 1500
	_, err = goals.CreateGoal(ctx, pending)
	require.NoError(t, err)

	checked, completed, err := goals.CheckProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, checked)
	assert.Equal(t, 1, completed)

	var done models.Goal
	require.NoError(t, db.First(&done, "id = ?", reached.ID).Error)
	assert.Equal(t, models.GoalStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedDate)

	var still models.Goal
	require.NoError(t, db.First(&still, "id = ?", pending.ID).Error)
	assert.Equal(t, models.GoalStatusActive, still.Status)

	// A second scan finds nothing new to complete.
	checked, completed, err = goals.CheckProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, checked)
	assert.Equal(t, 0, completed)
}

func TestUpdateStatusExternalTransitions(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)
	goals := NewGoalService(db)

	goal, err := goals.CreateGoal(ctx, newGoal(user, models.GoalTypeWeight, 75))
	require.NoError(t, err)

	_, err = goals.UpdateStatus(ctx, user.ID, goal.ID, models.GoalStatusCompleted)
	assert.True(t, IsValidation(err))

	_, err = goals.UpdateStatus(ctx, other.ID, goal.ID, models.GoalStatusAbandoned)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := goals.UpdateStatus(ctx, user.ID, goal.ID, models.GoalStatusAbandoned)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusAbandoned, updated.Status)
}
