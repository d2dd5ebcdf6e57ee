package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dinnerplan/backend/internal/models"
	"github.com/dinnerplan/backend/internal/service"
)

type MealHandler struct {
	mealService       *service.MealService
	ingredientService *service.IngredientService
	badgeService      *service.BadgeService
}

func NewMealHandler(mealService *service.MealService, ingredientService *service.IngredientService, badgeService *service.BadgeService) *MealHandler {
	return &MealHandler{
		mealService:       mealService,
		ingredientService: ingredientService,
		badgeService:      badgeService,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.GET("/:id", h.GetMeal)
		meals.POST("", h.CreateMeal)
		meals.PUT("/:id", h.UpdateMeal)
		meals.DELETE("/:id", h.DeleteMeal)
	}
	router.GET("/ingredients", h.ListIngredients)
	router.POST("/ingredients", h.CreateIngredient)
	router.DELETE("/ingredients", h.DeleteIngredientsForMeal)
}

// ListMeals lists all meals ordered by name; ?expand=ingredients includes
// each meal's ingredient list.
func (h *MealHandler) ListMeals(c *gin.Context) {
	var err error
	var meals interface{}
	if c.Query("expand") == "ingredients" {
		meals, err = h.mealService.ListWithIngredients(c.Request.Context())
	} else {
		meals, err = h.mealService.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	meal, err := h.mealService.Get(c.Request.Context(), id)
	if err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req service.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.mealService.CreateWithIngredients(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal"})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// UpdateMeal replaces the meal's fields and ingredient list, resetting the
// shopping rows of every day the meal is assigned to.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req service.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.mealService.UpdateWithIngredients(c.Request.Context(), id, &req)
	if err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.mealService.Delete(c.Request.Context(), id); err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		if service.IsForeignKeyViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Meal is still assigned to a day"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIngredients lists ingredients, filtered by ?meal_id=N when present.
func (h *MealHandler) ListIngredients(c *gin.Context) {
	ctx := c.Request.Context()
	if raw := c.Query("meal_id"); raw != "" {
		mealID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal_id"})
			return
		}
		ingredients, err := h.ingredientService.ListForMeal(ctx, mealID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
		return
	}
	ingredients, err := h.ingredientService.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// CreateIngredient adds one ingredient to an existing meal.
func (h *MealHandler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ingredient, err := h.ingredientService.Insert(c.Request.Context(), &models.Ingredient{
		Name:   req.Name,
		Amount: req.Amount,
		MealID: req.MealID,
	})
	if err != nil {
		if service.IsForeignKeyViolation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown meal"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// DeleteIngredientsForMeal removes a meal's whole ingredient list; dependent
// day-ingredient rows go with it.
func (h *MealHandler) DeleteIngredientsForMeal(c *gin.Context) {
	mealID, err := strconv.Atoi(c.Query("meal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal_id"})
		return
	}
	if err := h.ingredientService.DeleteForMeal(c.Request.Context(), mealID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredients"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}
