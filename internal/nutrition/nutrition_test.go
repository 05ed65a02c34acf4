package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveServingScalesPer100g(t *testing.T) {
	// Chicken breast: 165 kcal / 31g protein / 0g carbs / 3.6g fat per 100g.
	per100 := Macros{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}

	serving := DeriveServing(per100, 150)

	assert.Equal(t, 247.5, serving.Calories)
	assert.Equal(t, 46.5, serving.Protein)
	assert.Equal(t, 0.0, serving.Carbs)
	assert.InDelta(t, 5.4, serving.Fat, 0.001)
}

func TestDeriveServingZeroAmount(t *testing.T) {
	serving := DeriveServing(Macros{Calories: 100, Protein: 10, Carbs: 10, Fat: 10}, 0)
	assert.Equal(t, Macros{}, serving)
}

func TestDeriveServingKeepsTwoDecimals(t *testing.T) {
	serving := DeriveServing(Macros{Calories: 123.45, Protein: 6.78, Carbs: 9.01, Fat: 2.34}, 33)
	assert.Equal(t, 40.74, serving.Calories)
	assert.Equal(t, 2.24, serving.Protein)
}

func TestBMRMale(t *testing.T) {
	// 88.362 + 13.397*80 + 4.799*180 - 5.677*30 = 1853.632
	bmr := BMR(80, 180, 30, "M")
	assert.InDelta(t, 1853.63, bmr, 0.005)
}

func TestBMRFemale(t *testing.T) {
	// 447.593 + 9.247*60 + 3.098*165 - 4.330*25 = 1405.333
	bmr := BMR(60, 165, 25, "F")
	assert.InDelta(t, 1405.33, bmr, 0.005)
}

func TestBMROtherUsesFemaleCoefficients(t *testing.T) {
	assert.Equal(t, BMR(60, 165, 25, "F"), BMR(60, 165, 25, "O"))
}

func TestTDEEMultipliers(t *testing.T) {
	cases := []struct {
		level string
		want  float64
	}{
		{"sedentary", 1200},
		{"light", 1375},
		{"moderate", 1550},
		{"active", 1725},
		{"very_active", 1900},
		{"couch_potato", 1200}, // unknown level falls back to sedentary
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TDEE(1000, tc.level), "level %s", tc.level)
	}
}

func TestTDEEModerateExample(t *testing.T) {
	assert.InDelta(t, 2759.31, TDEE(1780.2, "moderate"), 0.005)
}

func TestCalorieTargetPerGoal(t *testing.T) {
	assert.Equal(t, 2500, CalorieTarget(3000, "weight_loss"))
	assert.Equal(t, 3300, CalorieTarget(3000, "muscle_gain"))
	assert.Equal(t, 3000, CalorieTarget(3000, "maintenance"))
	assert.Equal(t, 2759, CalorieTarget(2759.31, "maintenance"))
}

func TestCalorieTargetFloor(t *testing.T) {
	// A very low TDEE can never push the target below 1200.
	assert.Equal(t, 1200, CalorieTarget(900, "weight_loss"))
	assert.Equal(t, 1200, CalorieTarget(400, "maintenance"))
	assert.Equal(t, 1200, CalorieTarget(500, "muscle_gain"))
}

func TestMacroSplitExample(t *testing.T) {
	macros := MacroSplit(2759, "maintenance")
	assert.Equal(t, 206, macros.Protein)
	assert.Equal(t, 275, macros.Carbs)
	assert.Equal(t, 91, macros.Fat)
}

func TestMacroSplitRatiosSumToOne(t *testing.T) {
	ratios := map[string][3]float64{
		"weight_loss": {0.35, 0.35, 0.30},
		"muscle_gain": {0.30, 0.45, 0.25},
		"maintenance": {0.30, 0.40, 0.30},
	}
	for goal, r := range ratios {
		assert.InDelta(t, 1.0, r[0]+r[1]+r[2], 1e-9, "goal %s", goal)

		// The gram targets must be consistent with the published ratios.
		macros := MacroSplit(2000, goal)
		assert.Equal(t, int(2000*r[0]/4), macros.Protein, "goal %s", goal)
		assert.Equal(t, int(2000*r[1]/4), macros.Carbs, "goal %s", goal)
		assert.Equal(t, int(2000*r[2]/9), macros.Fat, "goal %s", goal)
	}
}
