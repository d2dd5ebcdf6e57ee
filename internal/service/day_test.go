package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinnerplan/backend/internal/models"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestUpsertCreatesDayWithDerivedWeek(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)

	view, err := svc.Upsert(context.Background(), mustDate(t, "2024-03-06"), nil)
	require.NoError(t, err)

	assert.Equal(t, 10, view.Day.Week)
	assert.Equal(t, 2024, view.Day.Year)
	assert.Nil(t, view.Day.MealID)
	assert.Nil(t, view.Meal)
	assert.Empty(t, view.Ingredients)
}

func TestUpsertAssignsMealAndPopulatesIngredients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Curry", "Rice", "Chicken", "Coconut Milk")

	view, err := svc.Upsert(ctx, mustDate(t, "2024-03-06"), &meal.ID)
	require.NoError(t, err)

	require.NotNil(t, view.Meal)
	assert.Equal(t, meal.ID, view.Meal.ID)
	require.Len(t, view.Ingredients, 3)
	for _, ing := range view.Ingredients {
		assert.False(t, ing.Bought)
	}
}

func TestUpsertPreservesIDAndAttendance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Stew", "Beef")
	date := mustDate(t, "2024-03-06")

	first, err := svc.Upsert(ctx, date, nil)
	require.NoError(t, err)
	_, err = svc.UpdateAttendance(ctx, first.Day.ID, true, false, true)
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, date, &meal.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Day.ID, second.Day.ID)
	assert.True(t, second.Day.AttendA)
	assert.False(t, second.Day.AttendB)
	assert.True(t, second.Day.AttendC)
	require.NotNil(t, second.Day.MealID)
	assert.Equal(t, meal.ID, *second.Day.MealID)
}

func TestUpsertReassignmentResetsBoughtFlags(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Tacos", "Tortillas", "Beef")
	date := mustDate(t, "2024-03-06")

	view, err := svc.Upsert(ctx, date, &meal.ID)
	require.NoError(t, err)
	require.Len(t, view.Ingredients, 2)

	_, err = svc.UpsertIngredientFlag(ctx, view.Day.ID, view.Ingredients[0].Ingredient.ID, true)
	require.NoError(t, err)

	// Re-assigning the same meal starts shopping over.
	again, err := svc.Upsert(ctx, date, &meal.ID)
	require.NoError(t, err)
	require.Len(t, again.Ingredients, 2)
	for _, ing := range again.Ingredients {
		assert.False(t, ing.Bought)
	}
}

func TestUpsertClearingMealRemovesIngredients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Pizza", "Dough", "Tomato")
	date := mustDate(t, "2024-03-06")

	view, err := svc.Upsert(ctx, date, &meal.ID)
	require.NoError(t, err)
	require.Len(t, view.Ingredients, 2)

	cleared, err := svc.Upsert(ctx, date, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Day.MealID)
	assert.Empty(t, cleared.Ingredients)

	var count int64
	require.NoError(t, db.Model(&models.DayIngredient{}).Where("day_id = ?", view.Day.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpsertUnknownMealFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)

	_, err := svc.Upsert(context.Background(), mustDate(t, "2024-03-06"), intPtr(9999))
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestUpdateAttendanceUnknownDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)

	_, err := svc.UpdateAttendance(context.Background(), 42, true, true, true)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpsertIngredientFlagTogglesSingleRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Salad", "Lettuce", "Feta")
	dayA, err := svc.Upsert(ctx, mustDate(t, "2024-03-06"), &meal.ID)
	require.NoError(t, err)
	dayB, err := svc.Upsert(ctx, mustDate(t, "2024-03-07"), &meal.ID)
	require.NoError(t, err)

	target := dayA.Ingredients[0].Ingredient.ID
	_, err = svc.UpsertIngredientFlag(ctx, dayA.Day.ID, target, true)
	require.NoError(t, err)

	// Only the toggled (day, ingredient) pair changes.
	rowsA, err := svc.IngredientsForDay(ctx, dayA.Day.ID)
	require.NoError(t, err)
	for _, r := range rowsA {
		assert.Equal(t, r.Ingredient.ID == target, r.Bought)
	}
	rowsB, err := svc.IngredientsForDay(ctx, dayB.Day.ID)
	require.NoError(t, err)
	for _, r := range rowsB {
		assert.False(t, r.Bought)
	}
}

func TestUpsertIngredientFlagUnknownIngredient(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDayService(db)
	ctx := context.Background()

	day, err := svc.Upsert(ctx, mustDate(t, "2024-03-06"), nil)
	require.NoError(t, err)

	_, err = svc.UpsertIngredientFlag(ctx, day.Day.ID, 9999, true)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func intPtr(v int) *int { return &v }
