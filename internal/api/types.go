package api

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateFoodRequest adds a custom food; nutrition values are per 100g.
type CreateFoodRequest struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Sugar       float64 `json:"sugar"`
	ServingSize float64 `json:"serving_size"`
	Barcode     string  `json:"barcode"`
}

// LogFoodRequest records a consumed serving.
type LogFoodRequest struct {
	FoodID        string  `json:"food_id" binding:"required"`
	ServingAmount float64 `json:"serving_amount" binding:"required"`
	MealType      string  `json:"meal_type" binding:"required"`
	Date          string  `json:"date"`
	Notes         string  `json:"notes"`
}

// LogWaterRequest records water intake in milliliters.
type LogWaterRequest struct {
	AmountML int    `json:"amount_ml" binding:"required"`
	Date     string `json:"date"`
}

// ProfileRequest creates a health profile.
type ProfileRequest struct {
	Gender        string   `json:"gender" binding:"required"`
	DateOfBirth   string   `json:"date_of_birth"`
	HeightCm      float64  `json:"height" binding:"required"`
	WeightKg      float64  `json:"weight" binding:"required"`
	ActivityLevel string   `json:"activity_level"`
	Goal          string   `json:"goal"`
	TargetWeight  *float64 `json:"target_weight"`
}

// UpdateProfileRequest carries partial profile changes.
type UpdateProfileRequest struct {
	Gender        *string  `json:"gender"`
	DateOfBirth   *string  `json:"date_of_birth"`
	HeightCm      *float64 `json:"height"`
	WeightKg      *float64 `json:"weight"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
	TargetWeight  *float64 `json:"target_weight"`
}

// CreateGoalRequest creates a tracked goal.
type CreateGoalRequest struct {
	GoalType    string  `json:"goal_type" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	TargetValue float64 `json:"target_value" binding:"required"`
	StartDate   string  `json:"start_date"`
	TargetDate  string  `json:"target_date" binding:"required"`
}

// UpdateGoalProgressRequest sets a goal's current value.
type UpdateGoalProgressRequest struct {
	CurrentValue float64 `json:"current_value"`
}

// UpdateGoalStatusRequest moves a goal to failed or abandoned.
type UpdateGoalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
