package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dinnerplan/backend/internal/models"
	"github.com/dinnerplan/backend/internal/week"
)

// DayService handles day rows and their per-day shopping state.
type DayService struct {
	db *gorm.DB
}

// NewDayService creates a new DayService instance
func NewDayService(db *gorm.DB) *DayService {
	return &DayService{db: db}
}

// Get retrieves a day by ID
func (s *DayService) Get(ctx context.Context, id int) (*models.Day, error) {
	var day models.Day
	if err := s.db.WithContext(ctx).First(&day, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("could not get day %d: %w", id, err)
	}
	return &day, nil
}

// GetForMeal lists every day currently assigned to the meal.
func (s *DayService) GetForMeal(ctx context.Context, mealID int) ([]models.Day, error) {
	var days []models.Day
	if err := s.db.WithContext(ctx).Where("meal_id = ?", mealID).Find(&days).Error; err != nil {
		return nil, fmt.Errorf("could not get days for meal %d: %w", mealID, err)
	}
	return days, nil
}

// Upsert writes a day's meal assignment and regenerates its shopping rows.
//
// The day row is inserted, or updated in place when one already exists for
// the date, overwriting meal_id, week and year while preserving id and
// attendance. Week and year are always derived from the date so the stored
// pair can never drift from it. All existing day-ingredient rows are then
// dropped and, when a meal is assigned, recreated unbought from the meal's
// current ingredient list — reassigning the same meal also resets shopping
// progress for the day.
func (s *DayService) Upsert(ctx context.Context, date models.Date, mealID *int) (*DayView, error) {
	derived := week.Of(date)
	day := models.Day{
		Date:   date,
		MealID: mealID,
		Week:   derived.Week,
		Year:   derived.Year,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"meal_id", "week", "year"}),
	}).Create(&day).Error; err != nil {
		return nil, fmt.Errorf("could not upsert day for date %s: %w", date, err)
	}

	// Reload by date: on conflict the returned id is not the stored row's.
	if err := s.db.WithContext(ctx).First(&day, "date = ?", date).Error; err != nil {
		return nil, fmt.Errorf("could not get day for date %s: %w", date, err)
	}

	if err := s.DeleteIngredientsForDay(ctx, day.ID); err != nil {
		return nil, err
	}

	view := DayView{Day: day}
	if mealID != nil {
		var meal models.Meal
		if err := s.db.WithContext(ctx).First(&meal, "id = ?", *mealID).Error; err != nil {
			return nil, fmt.Errorf("could not get meal %d: %w", *mealID, err)
		}

		var ingredients []models.Ingredient
		if err := s.db.WithContext(ctx).Where("meal_id = ?", *mealID).Find(&ingredients).Error; err != nil {
			return nil, fmt.Errorf("could not get ingredients for meal %d: %w", *mealID, err)
		}

		for _, ingredient := range ingredients {
			di := models.DayIngredient{
				DayID:        day.ID,
				IngredientID: ingredient.ID,
				Bought:       false,
			}
			if err := s.db.WithContext(ctx).Create(&di).Error; err != nil {
				return nil, fmt.Errorf("could not insert day ingredient (%d, %d): %w", day.ID, ingredient.ID, err)
			}
			view.Ingredients = append(view.Ingredients, models.IngredientWithBought{
				DayID:      day.ID,
				Ingredient: ingredient,
				Bought:     false,
			})
		}
		view.Meal = &meal
	}

	return &view, nil
}

// UpdateAttendance sets the three attendance flags of a day.
func (s *DayService) UpdateAttendance(ctx context.Context, id int, attendA, attendB, attendC bool) (*models.Day, error) {
	result := s.db.WithContext(ctx).Model(&models.Day{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"attend_a": attendA,
			"attend_b": attendB,
			"attend_c": attendC,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("could not update attendance for day %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("could not update attendance for day %d: %w", id, gorm.ErrRecordNotFound)
	}
	return s.Get(ctx, id)
}

// UpsertIngredientFlag sets the bought flag for one (day, ingredient) pair,
// inserting the row if it does not exist. Referential-integrity violations
// for unknown days or ingredients surface verbatim.
func (s *DayService) UpsertIngredientFlag(ctx context.Context, dayID, ingredientID int, bought bool) (*models.DayIngredient, error) {
	di := models.DayIngredient{
		DayID:        dayID,
		IngredientID: ingredientID,
		Bought:       bought,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"bought"}),
	}).Create(&di).Error; err != nil {
		return nil, fmt.Errorf("could not upsert day ingredient (%d, %d): %w", dayID, ingredientID, err)
	}
	return &di, nil
}

// IngredientsForDay lists a day's shopping rows joined to their ingredients.
func (s *DayService) IngredientsForDay(ctx context.Context, dayID int) ([]models.IngredientWithBought, error) {
	return ingredientsForDay(ctx, s.db, dayID)
}

// DeleteIngredientsForDay removes all of a day's shopping rows.
func (s *DayService) DeleteIngredientsForDay(ctx context.Context, dayID int) error {
	if err := s.db.WithContext(ctx).Where("day_id = ?", dayID).Delete(&models.DayIngredient{}).Error; err != nil {
		return fmt.Errorf("could not delete day ingredients for day %d: %w", dayID, err)
	}
	return nil
}
