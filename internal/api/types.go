package api

// UpsertDayRequest assigns a meal (or none) to a calendar date.
type UpsertDayRequest struct {
	Date   string `json:"date" binding:"required"`
	MealID *int   `json:"meal_id"`
}

// AttendanceRequest sets the three attendance flags of a day.
type AttendanceRequest struct {
	AttendA *bool `json:"attend_a" binding:"required"`
	AttendB *bool `json:"attend_b" binding:"required"`
	AttendC *bool `json:"attend_c" binding:"required"`
}

// CreateIngredientRequest adds a single ingredient to a meal.
type CreateIngredientRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1"`
	MealID int    `json:"meal_id" binding:"required"`
}

// BoughtRequest toggles the bought flag of a day's ingredient.
type BoughtRequest struct {
	Bought *bool `json:"bought" binding:"required"`
}
