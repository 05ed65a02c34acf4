// Package nutrition contains the pure calculations behind food logging and
// health metrics: per-serving macro derivation from per-100g nutrition data,
// and the BMR/TDEE/calorie-target/macro-split chain derived from a body
// profile. Everything here is stateless.
package nutrition

import "math"

// Macros holds calorie and macronutrient values, either per 100g of a food
// or for a concrete serving.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MacroTargets holds daily macro targets in whole grams.
type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// DefaultAge is assumed when a profile has no birth date.
const DefaultAge = 30

// MinCalorieTarget is the floor applied to every calorie target.
const MinCalorieTarget = 1200

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// DeriveServing scales a food's per-100g nutrition to a serving amount in
// grams. Values are kept to 2 decimal places.
func DeriveServing(per100 Macros, servingAmount float64) Macros {
	multiplier := servingAmount / 100
	return Macros{
		Calories: round2(per100.Calories * multiplier),
		Protein:  round2(per100.Protein * multiplier),
		Carbs:    round2(per100.Carbs * multiplier),
		Fat:      round2(per100.Fat * multiplier),
	}
}

// BMR estimates basal metabolic rate with the revised Harris-Benedict
// formula. Gender "M" selects the male coefficients; female and other use
// the same coefficient set.
func BMR(weightKg, heightCm float64, ageYears int, gender string) float64 {
	var bmr float64
	if gender == "M" {
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(ageYears)
	} else {
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(ageYears)
	}
	return round2(bmr)
}

// TDEE scales a BMR by the activity-level multiplier. Unknown levels fall
// back to sedentary.
func TDEE(bmr float64, activityLevel string) float64 {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = 1.2
	}
	return round2(bmr * multiplier)
}

// CalorieTarget adjusts a TDEE for the stated goal: a 500 kcal deficit for
// weight loss, a 300 kcal surplus for muscle gain, unchanged for
// maintenance. The result never drops below MinCalorieTarget.
func CalorieTarget(tdee float64, goal string) int {
	target := tdee
	switch goal {
	case "weight_loss":
		target = tdee - 500
	case "muscle_gain":
		target = tdee + 300
	}
	if int(target) < MinCalorieTarget {
		return MinCalorieTarget
	}
	return int(target)
}

// MacroSplit divides a calorie target into gram targets per macronutrient
// using goal-specific ratios (protein and carbs at 4 kcal/g, fat at 9 kcal/g).
func MacroSplit(calorieTarget int, goal string) MacroTargets {
	var proteinRatio, carbsRatio, fatRatio float64
	switch goal {
	case "weight_loss":
		proteinRatio, carbsRatio, fatRatio = 0.35, 0.35, 0.30
	case "muscle_gain":
		proteinRatio, carbsRatio, fatRatio = 0.30, 0.45, 0.25
	default: // maintenance
		proteinRatio, carbsRatio, fatRatio = 0.30, 0.40, 0.30
	}

	cal := float64(calorieTarget)
	return MacroTargets{
		Protein: int(cal * proteinRatio / 4),
		Carbs:   int(cal * carbsRatio / 4),
		Fat:     int(cal * fatRatio / 9),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
