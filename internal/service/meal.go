package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dinnerplan/backend/internal/models"
)

// IngredientInput is one submitted ingredient row; the owning meal id is
// always forced by the service.
type IngredientInput struct {
	Name   string `json:"name" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1"`
}

// CreateMealRequest creates a meal together with its ingredient list.
type CreateMealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Image       string            `json:"image"`
	RecipeURL   *string           `json:"recipe_url"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// UpdateMealRequest replaces a meal's fields and its whole ingredient list.
type UpdateMealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Image       string            `json:"image"`
	RecipeURL   *string           `json:"recipe_url"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// MealService handles meals and the cascades that keep per-day shopping
// state consistent with their ingredient lists.
type MealService struct {
	db     *gorm.DB
	images ImageLookup
	logger *zap.Logger
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB, images ImageLookup, logger *zap.Logger) *MealService {
	return &MealService{db: db, images: images, logger: logger}
}

// List lists all meals ordered case-insensitively by name.
func (s *MealService) List(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).Order("name COLLATE NOCASE ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("could not get meals: %w", err)
	}
	return meals, nil
}

// Get retrieves a meal with its ingredient list.
func (s *MealService) Get(ctx context.Context, id int) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).Preload("Ingredients").First(&meal, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("could not get meal %d: %w", id, err)
	}
	return &meal, nil
}

// ListWithIngredients lists all meals with their ingredient lists.
func (s *MealService) ListWithIngredients(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).Preload("Ingredients").
		Order("name COLLATE NOCASE ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("could not get meals with ingredients: %w", err)
	}
	return meals, nil
}

// CreateWithIngredients inserts a meal and its ingredient list. When the
// submitted image is not a valid URL an image is looked up by meal name,
// keeping the submitted value if the lookup is unavailable or fails.
func (s *MealService) CreateWithIngredients(ctx context.Context, req *CreateMealRequest) (*models.Meal, error) {
	image := req.Image
	if !isValidURL(image) && s.images != nil && s.images.Configured() {
		found, err := s.images.LookupImage(ctx, req.Name)
		if err != nil {
			s.logger.Warn("image lookup failed, keeping submitted value",
				zap.String("meal", req.Name), zap.Error(err))
		} else {
			image = found
		}
	}

	meal := models.Meal{
		Name:      req.Name,
		Image:     image,
		RecipeURL: req.RecipeURL,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, fmt.Errorf("could not insert meal %q: %w", req.Name, err)
	}

	for _, input := range req.Ingredients {
		ingredient := models.Ingredient{
			Name:   input.Name,
			Amount: input.Amount,
			MealID: meal.ID,
		}
		if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return nil, fmt.Errorf("could not insert ingredient %q: %w", input.Name, err)
		}
		meal.Ingredients = append(meal.Ingredients, ingredient)
	}

	return &meal, nil
}

// UpdateWithIngredients replaces a meal's fields and its ingredient list,
// propagating the new list to every day assigned to the meal.
//
// The old ingredients are deleted wholesale (their day-ingredient rows go
// with them via the declared cascade), then the new list is inserted and an
// unbought day-ingredient row is written for each new ingredient on each
// assigned day. Steps are independent autocommitted writes: the first
// failure aborts with no compensating rollback.
func (s *MealService) UpdateWithIngredients(ctx context.Context, id int, req *UpdateMealRequest) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("could not get meal %d: %w", id, err)
	}

	// Full-column update so a cleared recipe URL is stored as NULL.
	if err := s.db.WithContext(ctx).Model(&models.Meal{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       req.Name,
			"image":      req.Image,
			"recipe_url": req.RecipeURL,
		}).Error; err != nil {
		return nil, fmt.Errorf("could not update meal %d: %w", id, err)
	}

	if err := s.db.WithContext(ctx).Where("meal_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
		return nil, fmt.Errorf("could not delete ingredients for meal %d: %w", id, err)
	}

	var days []models.Day
	if err := s.db.WithContext(ctx).Where("meal_id = ?", id).Find(&days).Error; err != nil {
		return nil, fmt.Errorf("could not get days for meal %d: %w", id, err)
	}

	updated := models.Meal{ID: id, Name: req.Name, Image: req.Image, RecipeURL: req.RecipeURL}
	for _, input := range req.Ingredients {
		ingredient := models.Ingredient{
			Name:   input.Name,
			Amount: input.Amount,
			MealID: id,
		}
		if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return nil, fmt.Errorf("could not insert ingredient %q: %w", input.Name, err)
		}
		updated.Ingredients = append(updated.Ingredients, ingredient)

		// Fresh list starts unbought on every day that serves this meal.
		for _, day := range days {
			di := models.DayIngredient{
				DayID:        day.ID,
				IngredientID: ingredient.ID,
				Bought:       false,
			}
			if err := s.db.WithContext(ctx).Create(&di).Error; err != nil {
				return nil, fmt.Errorf("could not insert day ingredient (%d, %d): %w", day.ID, ingredient.ID, err)
			}
		}
	}

	return &updated, nil
}

// Delete removes a meal and its ingredients. Rejected while any day still
// references the meal.
func (s *MealService) Delete(ctx context.Context, id int) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return fmt.Errorf("could not get meal %d: %w", id, err)
	}

	// Ingredients must be removed before the meal, so check the day
	// references up front instead of letting the meal delete fail late.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Day{}).Where("meal_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("could not count days for meal %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("could not delete meal %d: %w", id, ErrMealInUse)
	}

	if err := s.db.WithContext(ctx).Where("meal_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
		return fmt.Errorf("could not delete ingredients for meal %d: %w", id, err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Meal{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("could not delete meal %d: %w", id, err)
	}
	return nil
}

func isValidURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
