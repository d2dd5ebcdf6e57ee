package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dinnerplan/backend/internal/models"
	"github.com/dinnerplan/backend/internal/week"
)

// DayView is the week assembler's projection for a single day. Days with no
// assigned meal carry no ingredient data.
type DayView struct {
	Day         models.Day                    `json:"day"`
	Meal        *models.Meal                  `json:"meal,omitempty"`
	Ingredients []models.IngredientWithBought `json:"ingredients,omitempty"`
}

// WeekService assembles the seven-day view of a planning week, creating
// missing day rows on first access.
type WeekService struct {
	db *gorm.DB
}

// NewWeekService creates a new WeekService instance
func NewWeekService(db *gorm.DB) *WeekService {
	return &WeekService{db: db}
}

// DaysForWeek returns exactly seven day projections, Monday through Sunday.
//
// Missing day rows are inserted lazily, each with the week and year derived
// from its own date rather than trusted from the caller, so the stored pair
// can never drift. Inserts are independent autocommitted writes, so a
// failure mid-loop leaves a partial week — re-invocation is idempotent
// because each date is looked up before insert.
func (s *WeekService) DaysForWeek(ctx context.Context, wk week.Week) ([]DayView, error) {
	dates, err := wk.Dates()
	if err != nil {
		return nil, fmt.Errorf("could not get dates for week %d of %d: %w", wk.Week, wk.Year, err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Day{}).
		Where("week = ? AND year = ?", wk.Week, wk.Year).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("could not count days for week %d of %d: %w", wk.Week, wk.Year, err)
	}

	if count < 7 {
		for _, date := range dates {
			var existing models.Day
			err := s.db.WithContext(ctx).Where("date = ?", date).First(&existing).Error
			if err == nil {
				continue
			}
			if !IsNotFound(err) {
				return nil, fmt.Errorf("could not get day for date %s: %w", date, err)
			}

			derived := week.Of(date)
			day := models.Day{
				Date: date,
				Week: derived.Week,
				Year: derived.Year,
			}
			if err := s.db.WithContext(ctx).Create(&day).Error; err != nil {
				return nil, fmt.Errorf("could not create day for date %s: %w", date, err)
			}
		}
	}

	var days []models.Day
	if err := s.db.WithContext(ctx).
		Where("week = ? AND year = ?", wk.Week, wk.Year).
		Order("date").
		Find(&days).Error; err != nil {
		return nil, fmt.Errorf("could not get days for week %d of %d: %w", wk.Week, wk.Year, err)
	}

	// A consistency check, not a recoverable condition.
	if len(days) != 7 {
		return nil, fmt.Errorf("expected 7 days for week %d of %d, got %d", wk.Week, wk.Year, len(days))
	}

	views := make([]DayView, 0, len(days))
	for _, day := range days {
		view := DayView{Day: day}
		if day.MealID != nil {
			var meal models.Meal
			if err := s.db.WithContext(ctx).First(&meal, "id = ?", *day.MealID).Error; err != nil {
				return nil, fmt.Errorf("could not get meal %d for day %s: %w", *day.MealID, day.Date, err)
			}
			ingredients, err := ingredientsForDay(ctx, s.db, day.ID)
			if err != nil {
				return nil, err
			}
			view.Meal = &meal
			view.Ingredients = ingredients
		}
		views = append(views, view)
	}
	return views, nil
}

// ingredientsForDay joins a day's shopping rows to their ingredients.
func ingredientsForDay(ctx context.Context, db *gorm.DB, dayID int) ([]models.IngredientWithBought, error) {
	type row struct {
		models.Ingredient
		DayID  int
		Bought bool
	}
	var rows []row
	if err := db.WithContext(ctx).
		Table("days_ingredients").
		Select("ingredients.*, days_ingredients.day_id, days_ingredients.bought").
		Joins("JOIN ingredients ON ingredients.id = days_ingredients.ingredient_id").
		Where("days_ingredients.day_id = ?", dayID).
		Order("ingredients.id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not get ingredients for day %d: %w", dayID, err)
	}

	out := make([]models.IngredientWithBought, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.IngredientWithBought{
			DayID:      r.DayID,
			Ingredient: r.Ingredient,
			Bought:     r.Bought,
		})
	}
	return out, nil
}
