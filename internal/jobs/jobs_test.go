package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/testhelpers"
)

func TestRecalculateDayProcessesAllActiveUsers(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	active1 := testhelpers.CreateTestUser(t, db)
	active2 := testhelpers.CreateTestUser(t, db)
	inactive := testhelpers.CreateTestUser(t, db)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	summaries := service.NewSummaryService(db, cache.Disabled{})
	logs := service.NewFoodLogService(db, summaries)
	food := testhelpers.CreateTestFood(t, db, "Rice", 130, 2.7, 28, 0.3)

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := logs.LogFood(ctx, active1.ID, food.ID, 200, models.MealDinner, yesterday, "")
	require.NoError(t, err)

	job := NewSummaryJob(db, summaries)
	result, err := job.RecalculateYesterday(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Processed)

	summary, err := summaries.GetOrCreate(ctx, active1.ID, yesterday)
	require.NoError(t, err)
	assert.InDelta(t, 260, summary.TotalCalories, 0.001)

	summary, err = summaries.GetOrCreate(ctx, active2.ID, yesterday)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalCalories)
}

type flakySummaries struct {
	service.ISummaryService
	failFor int
	calls   int
}

func (f *flakySummaries) GetOrCreate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailySummary, error) {
	f.calls++
	if f.calls <= f.failFor {
		return nil, errors.New("storage hiccup")
	}
	return f.ISummaryService.GetOrCreate(ctx, userID, date)
}

func TestRecalculateDayToleratesPerUserFailure(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	testhelpers.CreateTestUser(t, db)
	testhelpers.CreateTestUser(t, db)
	testhelpers.CreateTestUser(t, db)

	flaky := &flakySummaries{
		ISummaryService: service.NewSummaryService(db, cache.Disabled{}),
		failFor:         1,
	}

	job := NewSummaryJob(db, flaky)
	result, err := job.RecalculateYesterday(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Processed)
}

func TestRunWithRetryRecoversAfterFailure(t *testing.T) {
	calls := 0
	err := RunWithRetry(context.Background(), "test", 3, time.Millisecond, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("unreachable")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunWithRetryGivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := RunWithRetry(context.Background(), "test", 3, time.Millisecond, func(ctx context.Context) error {
		calls++
		return errors.New("still down")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestGoalJobRunsScan(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	goals := service.NewGoalService(db)

	goal := &models.Goal{
		UserID:       user.ID,
		GoalType:     models.GoalTypeWater,
		Title:        "drink up",
		TargetValue:  2000,
		CurrentValue: 2500,
		StartDate:    time.Now(),
		TargetDate:   time.Now().AddDate(0, 0, 7),
	}
	_, err := goals.CreateGoal(ctx, goal)
	require.NoError(t, err)

	job := NewGoalJob(goals)
	require.NoError(t, job.Run(ctx))

	var done models.Goal
	require.NoError(t, db.First(&done, "id = ?", goal.ID).Error)
	assert.Equal(t, models.GoalStatusCompleted, done.Status)
}
