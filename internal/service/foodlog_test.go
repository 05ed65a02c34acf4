package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/testhelpers"
)

func TestLogFoodDerivesMacrosFromServing(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	food := testhelpers.CreateTestFood(t, db, "Chicken Breast", 165, 31, 0, 3.6)

	logs := NewFoodLogService(db, NewSummaryService(db, cache.Disabled{}))

	entry, err := logs.LogFood(ctx, user.ID, food.ID, 150, models.MealLunch, time.Now(), "post workout")
	require.NoError(t, err)

	assert.Equal(t, 247.5, entry.Calories)
	assert.Equal(t, 46.5, entry.Protein)
	assert.Equal(t, 0.0, entry.Carbs)
	assert.InDelta(t, 5.4, entry.Fat, 0.001)
	assert.Equal(t, "post workout", entry.Notes)
}

func TestLogFoodSnapshotSurvivesFoodChanges(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	food := testhelpers.CreateTestFood(t, db, "Yogurt", 59, 10, 3.6, 0.4)

	logs := NewFoodLogService(db, NewSummaryService(db, cache.Disabled{}))

	entry, err := logs.LogFood(ctx, user.ID, food.ID, 200, models.MealBreakfast, time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, 118.0, entry.Calories)

	// The derived values are a point-in-time denormalization: a later change
	// to the food must not affect the persisted entry.
	require.NoError(t, db.Model(food).Update("calories", 999).Error)

	var reloaded models.FoodLog
	require.NoError(t, db.First(&reloaded, "id = ?", entry.ID).Error)
	assert.Equal(t, 118.0, reloaded.Calories)
}

func TestLogFoodValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	food := testhelpers.CreateTestFood(t, db, "Bread", 265, 9, 49, 3.2)

	logs := NewFoodLogService(db, NewSummaryService(db, cache.Disabled{}))

	_, err := logs.LogFood(ctx, user.ID, food.ID, 0, models.MealLunch, time.Now(), "")
	assert.True(t, IsValidation(err))

	_, err = logs.LogFood(ctx, user.ID, food.ID, -50, models.MealLunch, time.Now(), "")
	assert.True(t, IsValidation(err))

	_, err = logs.LogFood(ctx, user.ID, food.ID, 100, "brunch", time.Now(), "")
	assert.True(t, IsValidation(err))

	_, err = logs.LogFood(ctx, user.ID, uuid.New(), 100, models.MealLunch, time.Now(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLogOwnership(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)
	food := testhelpers.CreateTestFood(t, db, "Eggs", 155, 13, 1.1, 11)

	logs := NewFoodLogService(db, NewSummaryService(db, cache.Disabled{}))

	entry, err := logs.LogFood(ctx, owner.ID, food.ID, 100, models.MealBreakfast, time.Now(), "")
	require.NoError(t, err)

	assert.ErrorIs(t, logs.DeleteLog(ctx, other.ID, entry.ID), ErrForbidden)
	assert.ErrorIs(t, logs.DeleteLog(ctx, owner.ID, uuid.New()), ErrNotFound)
	assert.NoError(t, logs.DeleteLog(ctx, owner.ID, entry.ID))
}

func TestDailyLogsGroupsByMealSlot(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	food := testhelpers.CreateTestFood(t, db, "Pasta", 131, 5, 25, 1.1)

	logs := NewFoodLogService(db, NewSummaryService(db, cache.Disabled{}))
	today := time.Now()

	_, err := logs.LogFood(ctx, user.ID, food.ID, 150, models.MealLunch, today, "")
	require.NoError(t, err)
	_, err = logs.LogFood(ctx, user.ID, food.ID, 100, models.MealLunch, today, "")
	require.NoError(t, err)
	_, err = logs.LogFood(ctx, user.ID, food.ID, 80, models.MealSnack, today, "")
	require.NoError(t, err)

	grouped, err := logs.DailyLogs(ctx, user.ID, today)
	require.NoError(t, err)

	// All four slots are present even when empty.
	assert.Len(t, grouped, 4)
	assert.Len(t, grouped[models.MealBreakfast], 0)
	assert.Len(t, grouped[models.MealLunch], 2)
	assert.Len(t, grouped[models.MealDinner], 0)
	assert.Len(t, grouped[models.MealSnack], 1)

	// Entries from other days stay out.
	grouped, err = logs.DailyLogs(ctx, user.ID, today.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Len(t, grouped[models.MealLunch], 0)
}
