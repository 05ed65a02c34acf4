package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/testhelpers"
)

func maleProfile(userID uuid.UUID) *models.UserProfile {
	dob := time.Now().AddDate(-30, 0, 0)
	return &models.UserProfile{
		UserID:        userID,
		Gender:        models.GenderMale,
		DateOfBirth:   &dob,
		HeightCm:      180,
		WeightKg:      80,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalMaintenance,
	}
}

func TestCreateProfileDerivesMetrics(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	profiles := NewProfileService(db)

	profile, err := profiles.CreateProfile(ctx, maleProfile(user.ID))
	require.NoError(t, err)

	require.NotNil(t, profile.BMR)
	assert.InDelta(t, 1853.63, *profile.BMR, 0.005)
	require.NotNil(t, profile.TDEE)
	assert.InDelta(t, 2873.13, *profile.TDEE, 0.005)
	require.NotNil(t, profile.DailyCalorieTarget)
	assert.Equal(t, 2873, *profile.DailyCalorieTarget)
	require.NotNil(t, profile.DailyProteinTarget)
	assert.Equal(t, 215, *profile.DailyProteinTarget)
	require.NotNil(t, profile.DailyCarbsTarget)
	assert.Equal(t, 287, *profile.DailyCarbsTarget)
	require.NotNil(t, profile.DailyFatTarget)
	assert.Equal(t, 95, *profile.DailyFatTarget)
}

func TestCreateProfileTwiceConflicts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	profiles := NewProfileService(db)

	_, err := profiles.CreateProfile(ctx, maleProfile(user.ID))
	require.NoError(t, err)

	_, err = profiles.CreateProfile(ctx, maleProfile(user.ID))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateProfileValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	profiles := NewProfileService(db)

	bad := maleProfile(user.ID)
	bad.Gender = "X"
	_, err := profiles.CreateProfile(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = maleProfile(user.ID)
	bad.HeightCm = 0
	_, err = profiles.CreateProfile(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = maleProfile(user.ID)
	bad.ActivityLevel = "extreme"
	_, err = profiles.CreateProfile(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = maleProfile(user.ID)
	bad.Goal = "bulk"
	_, err = profiles.CreateProfile(ctx, bad)
	assert.True(t, IsValidation(err))
}

func TestCalculateAndUpdateWithoutProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	profiles := NewProfileService(db)

	_, err := profiles.CalculateAndUpdate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalculateAndUpdateDefaultsAgeWithoutBirthDate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	profiles := NewProfileService(db)

	profile := maleProfile(user.ID)
	profile.DateOfBirth = nil
	_, err := profiles.CreateProfile(ctx, profile)
	require.NoError(t, err)

	result, err := profiles.CalculateAndUpdate(ctx, user.ID)
	require.NoError(t, err)
	// Age falls back to 30, matching the dated profile in the other tests.
	assert.InDelta(t, 1853.63, result.BMR, 0.005)
}

func TestUpdateProfileRecomputesOnInputChange(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	profiles := NewProfileService(db)

	_, err := profiles.CreateProfile(ctx, maleProfile(user.ID))
	require.NoError(t, err)

	weight := 90.0
	updated, err := profiles.UpdateProfile(ctx, user.ID, &ProfileUpdate{WeightKg: &weight})
	require.NoError(t, err)

	// 88.362 + 13.397*90 + 4.799*180 - 5.677*30 = 1987.602
	require.NotNil(t, updated.BMR)
	assert.InDelta(t, 1987.6, *updated.BMR, 0.005)
}

func TestUpdateProfileSkipsRecomputeForUnrelatedChange(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	profiles := NewProfileService(db)

	created, err := profiles.CreateProfile(ctx, maleProfile(user.ID))
	require.NoError(t, err)
	originalBMR := *created.BMR

	target := 75.0
	updated, err := profiles.UpdateProfile(ctx, user.ID, &ProfileUpdate{TargetWeight: &target})
	require.NoError(t, err)

	require.NotNil(t, updated.BMR)
	assert.Equal(t, originalBMR, *updated.BMR)
	require.NotNil(t, updated.TargetWeight)
	assert.Equal(t, 75.0, *updated.TargetWeight)
}
