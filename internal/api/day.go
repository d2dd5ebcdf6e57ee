package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dinnerplan/backend/internal/models"
	"github.com/dinnerplan/backend/internal/service"
)

type DayHandler struct {
	dayService   *service.DayService
	badgeService *service.BadgeService
}

func NewDayHandler(dayService *service.DayService, badgeService *service.BadgeService) *DayHandler {
	return &DayHandler{dayService: dayService, badgeService: badgeService}
}

func (h *DayHandler) RegisterRoutes(router *gin.RouterGroup) {
	days := router.Group("/days")
	{
		days.GET("", h.ListDays)
		days.GET("/:id", h.GetDay)
		days.PUT("", h.UpsertDay)
		days.PUT("/:id/attendance", h.UpdateAttendance)
		days.GET("/:id/ingredients", h.ListDayIngredients)
		days.PUT("/:id/ingredients/:ingredientID", h.SetIngredientBought)
		days.DELETE("/:id/ingredients", h.DeleteDayIngredients)
	}
}

func (h *DayHandler) GetDay(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	day, err := h.dayService.Get(c.Request.Context(), id)
	if err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Day not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch day"})
		return
	}
	c.JSON(http.StatusOK, day)
}

// ListDays lists the days assigned to a meal; meal_id is required.
func (h *DayHandler) ListDays(c *gin.Context) {
	mealID, err := strconv.Atoi(c.Query("meal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal_id"})
		return
	}
	days, err := h.dayService.GetForMeal(c.Request.Context(), mealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch days"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// UpsertDay writes a day's meal assignment and regenerates its shopping
// rows. The day is addressed by date, not id, so the same call creates and
// updates.
func (h *DayHandler) UpsertDay(c *gin.Context) {
	var req UpsertDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	view, err := h.dayService.Upsert(c.Request.Context(), date, req.MealID)
	if err != nil {
		if service.IsNotFound(err) || service.IsForeignKeyViolation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown meal"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save day"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, view)
}

func (h *DayHandler) UpdateAttendance(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := h.dayService.UpdateAttendance(c.Request.Context(), id, *req.AttendA, *req.AttendB, *req.AttendC)
	if err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Day not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update attendance"})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *DayHandler) ListDayIngredients(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	ingredients, err := h.dayService.IngredientsForDay(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch day ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *DayHandler) SetIngredientBought(c *gin.Context) {
	dayID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	ingredientID, err := strconv.Atoi(c.Param("ingredientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient id"})
		return
	}
	var req BoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	di, err := h.dayService.UpsertIngredientFlag(c.Request.Context(), dayID, ingredientID, *req.Bought)
	if err != nil {
		if service.IsForeignKeyViolation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown day or ingredient"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, di)
}

func (h *DayHandler) DeleteDayIngredients(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.dayService.DeleteIngredientsForDay(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete day ingredients"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return v, true
}
