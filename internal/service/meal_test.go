package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinnerplan/backend/internal/models"
)

// stubImageLookup returns a fixed URL, or an error when url is empty.
type stubImageLookup struct {
	url   string
	calls int
}

func (s *stubImageLookup) Configured() bool { return true }

func (s *stubImageLookup) LookupImage(ctx context.Context, query string) (string, error) {
	s.calls++
	if s.url == "" {
		return "", assert.AnError
	}
	return s.url, nil
}

func TestListOrdersCaseInsensitively(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	ctx := context.Background()

	seedMeal(t, db, "banana pancakes")
	seedMeal(t, db, "Apple pie")
	seedMeal(t, db, "Coq au vin")
	seedMeal(t, db, "aubergine bake")

	meals, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, meals, 4)
	assert.Equal(t, "Apple pie", meals[0].Name)
	assert.Equal(t, "aubergine bake", meals[1].Name)
	assert.Equal(t, "banana pancakes", meals[2].Name)
	assert.Equal(t, "Coq au vin", meals[3].Name)
}

func TestCreateWithIngredientsLooksUpMissingImage(t *testing.T) {
	db := setupTestDB(t)
	stub := &stubImageLookup{url: "https://img.example/found.jpg"}
	svc := NewMealService(db, stub, zap.NewNop())

	meal, err := svc.CreateWithIngredients(context.Background(), &CreateMealRequest{
		Name:        "Ramen",
		Image:       "not a url",
		Ingredients: []IngredientInput{{Name: "Noodles", Amount: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/found.jpg", meal.Image)
	assert.Equal(t, 1, stub.calls)
}

func TestCreateWithIngredientsKeepsValidImageURL(t *testing.T) {
	db := setupTestDB(t)
	stub := &stubImageLookup{url: "https://img.example/found.jpg"}
	svc := NewMealService(db, stub, zap.NewNop())

	meal, err := svc.CreateWithIngredients(context.Background(), &CreateMealRequest{
		Name:  "Ramen",
		Image: "https://img.example/submitted.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/submitted.jpg", meal.Image)
	assert.Equal(t, 0, stub.calls)
}

func TestCreateWithIngredientsDegradesOnLookupFailure(t *testing.T) {
	db := setupTestDB(t)
	stub := &stubImageLookup{}
	svc := NewMealService(db, stub, zap.NewNop())

	meal, err := svc.CreateWithIngredients(context.Background(), &CreateMealRequest{
		Name:  "Ramen",
		Image: "placeholder",
	})
	require.NoError(t, err)
	assert.Equal(t, "placeholder", meal.Image)
	assert.Equal(t, 1, stub.calls)
}

func TestUpdateWithIngredientsReplacesList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	ctx := context.Background()

	meal := seedMeal(t, db, "Chili", "Beans", "Beef")

	updated, err := svc.UpdateWithIngredients(ctx, meal.ID, &UpdateMealRequest{
		Name:        "Chili sin carne",
		Image:       meal.Image,
		Ingredients: []IngredientInput{{Name: "Beans", Amount: 2}, {Name: "Corn", Amount: 1}, {Name: "Peppers", Amount: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chili sin carne", updated.Name)
	require.Len(t, updated.Ingredients, 3)

	// The old rows are gone, not merged.
	var ingredients []models.Ingredient
	require.NoError(t, db.Where("meal_id = ?", meal.ID).Find(&ingredients).Error)
	require.Len(t, ingredients, 3)
	names := []string{ingredients[0].Name, ingredients[1].Name, ingredients[2].Name}
	assert.NotContains(t, names, "Beef")
}

func TestUpdateWithIngredientsClearsRecipeURL(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	ctx := context.Background()

	recipe := "https://recipes.example/chili"
	meal, err := svc.CreateWithIngredients(ctx, &CreateMealRequest{
		Name: "Chili", Image: "https://img.example/chili.jpg", RecipeURL: &recipe,
	})
	require.NoError(t, err)

	_, err = svc.UpdateWithIngredients(ctx, meal.ID, &UpdateMealRequest{
		Name: "Chili", Image: meal.Image, RecipeURL: nil,
	})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, meal.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RecipeURL)
}

func TestUpdateWithIngredientsPropagatesToAssignedDays(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	days := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Risotto", "Rice", "Parmesan")
	dayA, err := days.Upsert(ctx, mustDate(t, "2024-03-06"), &meal.ID)
	require.NoError(t, err)
	dayB, err := days.Upsert(ctx, mustDate(t, "2024-03-08"), &meal.ID)
	require.NoError(t, err)

	// Mark one row bought; the update wipes it along with the old list.
	_, err = days.UpsertIngredientFlag(ctx, dayA.Day.ID, dayA.Ingredients[0].Ingredient.ID, true)
	require.NoError(t, err)

	_, err = svc.UpdateWithIngredients(ctx, meal.ID, &UpdateMealRequest{
		Name:        meal.Name,
		Image:       meal.Image,
		Ingredients: []IngredientInput{{Name: "Rice", Amount: 1}, {Name: "Mushrooms", Amount: 2}, {Name: "Stock", Amount: 1}},
	})
	require.NoError(t, err)

	for _, dayID := range []int{dayA.Day.ID, dayB.Day.ID} {
		rows, err := days.IngredientsForDay(ctx, dayID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for _, r := range rows {
			assert.False(t, r.Bought)
		}
	}
}

func TestUpdateWithIngredientsLeavesOtherDaysAlone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	days := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Risotto", "Rice")
	other := seedMeal(t, db, "Soup", "Leeks")
	otherDay, err := days.Upsert(ctx, mustDate(t, "2024-03-07"), &other.ID)
	require.NoError(t, err)
	_, err = days.UpsertIngredientFlag(ctx, otherDay.Day.ID, otherDay.Ingredients[0].Ingredient.ID, true)
	require.NoError(t, err)

	_, err = svc.UpdateWithIngredients(ctx, meal.ID, &UpdateMealRequest{
		Name: meal.Name, Image: meal.Image,
		Ingredients: []IngredientInput{{Name: "Barley", Amount: 1}},
	})
	require.NoError(t, err)

	rows, err := days.IngredientsForDay(ctx, otherDay.Day.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Bought)
}

func TestDeleteMealRemovesIngredients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	ctx := context.Background()

	meal := seedMeal(t, db, "Omelette", "Eggs", "Butter")
	require.NoError(t, svc.Delete(ctx, meal.ID))

	_, err := svc.Get(ctx, meal.ID)
	assert.True(t, IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("meal_id = ?", meal.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteMealRejectedWhileAssigned(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())
	days := NewDayService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, "Omelette", "Eggs")
	_, err := days.Upsert(ctx, mustDate(t, "2024-03-06"), &meal.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, meal.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMealInUse)
	assert.True(t, IsForeignKeyViolation(err))

	// Clearing the assignment unblocks the delete.
	_, err = days.Upsert(ctx, mustDate(t, "2024-03-06"), nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, meal.ID))
}

func TestDeleteUnknownMeal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealService(db, nil, zap.NewNop())

	err := svc.Delete(context.Background(), 9999)
	assert.True(t, IsNotFound(err))
}
