package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dinnerplan/backend/internal/models"
)

// IngredientService is the thin store over ingredient rows; the meal
// service drives the bulk replace-and-cascade paths.
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// Get retrieves an ingredient by ID
func (s *IngredientService) Get(ctx context.Context, id int) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("could not get ingredient %d: %w", id, err)
	}
	return &ingredient, nil
}

// List lists all ingredients
func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("could not get ingredients: %w", err)
	}
	return ingredients, nil
}

// ListForMeal lists the ingredients owned by one meal.
func (s *IngredientService) ListForMeal(ctx context.Context, mealID int) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("meal_id = ?", mealID).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("could not get ingredients for meal %d: %w", mealID, err)
	}
	return ingredients, nil
}

// Insert adds one ingredient to a meal. Fails with a referential-integrity
// error for an unknown meal id.
func (s *IngredientService) Insert(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, fmt.Errorf("could not insert ingredient %q: %w", ingredient.Name, err)
	}
	return ingredient, nil
}

// DeleteForMeal bulk-deletes a meal's ingredients; dependent day-ingredient
// rows go with them.
func (s *IngredientService) DeleteForMeal(ctx context.Context, mealID int) error {
	if err := s.db.WithContext(ctx).Where("meal_id = ?", mealID).Delete(&models.Ingredient{}).Error; err != nil {
		return fmt.Errorf("could not delete ingredients for meal %d: %w", mealID, err)
	}
	return nil
}
