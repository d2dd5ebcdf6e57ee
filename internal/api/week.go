package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dinnerplan/backend/internal/service"
	"github.com/dinnerplan/backend/internal/week"
)

type WeekHandler struct {
	weekService *service.WeekService
}

func NewWeekHandler(weekService *service.WeekService) *WeekHandler {
	return &WeekHandler{weekService: weekService}
}

func (h *WeekHandler) RegisterRoutes(router *gin.RouterGroup) {
	weeks := router.Group("/week")
	{
		weeks.GET("/current", h.GetCurrentWeek)
		weeks.GET("/:year/:week", h.GetWeek)
		weeks.GET("/:year/:week/next", h.GetNextWeek)
	}
}

// GetWeek returns the seven day projections of one planning week, creating
// missing day rows on the way.
func (h *WeekHandler) GetWeek(c *gin.Context) {
	wk, ok := parseWeekParams(c)
	if !ok {
		return
	}
	h.respondWeek(c, wk)
}

// GetCurrentWeek returns the projections for the week containing today.
func (h *WeekHandler) GetCurrentWeek(c *gin.Context) {
	h.respondWeek(c, week.Current())
}

// GetNextWeek steps delta weeks from the given week and returns the
// resulting week identifier without touching the database.
func (h *WeekHandler) GetNextWeek(c *gin.Context) {
	wk, ok := parseWeekParams(c)
	if !ok {
		return
	}
	delta := 1
	if raw := c.Query("delta"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delta"})
			return
		}
		delta = parsed
	}
	c.JSON(http.StatusOK, wk.Next(delta))
}

func (h *WeekHandler) respondWeek(c *gin.Context, wk week.Week) {
	days, err := h.weekService.DaysForWeek(c.Request.Context(), wk)
	if err != nil {
		if !wk.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No such week in that year"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble week"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"week": wk,
		"days": days,
	})
}

func parseWeekParams(c *gin.Context) (week.Week, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return week.Week{}, false
	}
	wk, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week"})
		return week.Week{}, false
	}
	w := week.Week{Week: wk, Year: year}
	if !w.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No such week in that year"})
		return week.Week{}, false
	}
	return w, true
}
