package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dinnerplan/backend/internal/database"
	"github.com/dinnerplan/backend/internal/models"
)

// setupTestDB opens a throwaway sqlite database with the full schema and
// foreign keys enforced.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := database.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Meal{},
		&models.Ingredient{},
		&models.Day{},
		&models.DayIngredient{},
		&models.ExtraItem{},
	))
	return db
}

// seedMeal inserts a meal with the given ingredient names, one unit each.
func seedMeal(t *testing.T, db *gorm.DB, name string, ingredientNames ...string) *models.Meal {
	t.Helper()

	svc := NewMealService(db, nil, zap.NewNop())
	req := &CreateMealRequest{Name: name, Image: "https://img.example/" + name + ".jpg"}
	for _, n := range ingredientNames {
		req.Ingredients = append(req.Ingredients, IngredientInput{Name: n, Amount: 1})
	}
	meal, err := svc.CreateWithIngredients(context.Background(), req)
	require.NoError(t, err)
	return meal
}
