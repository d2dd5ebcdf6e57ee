package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appconfig "github.com/dinnerplan/backend/config"
	"github.com/dinnerplan/backend/internal/database"
	"github.com/dinnerplan/backend/internal/service"
)

// SetupAPI wires services and handlers onto the router. redisClient and
// s3Config may be nil; the affected features degrade gracefully.
func SetupAPI(router *gin.Engine, db *gorm.DB, cfg *appconfig.Config, redisClient *redis.Client, s3Config *appconfig.S3Config, logger *zap.Logger) {
	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		imageService := service.NewImageService(cfg, s3Config, logger)
		badgeService := service.NewBadgeService(db, redisClient, logger)
		weekService := service.NewWeekService(db)
		dayService := service.NewDayService(db)
		mealService := service.NewMealService(db, imageService, logger)
		ingredientService := service.NewIngredientService(db)
		extraItemService := service.NewExtraItemService(db)

		NewWeekHandler(weekService).RegisterRoutes(v1)
		NewDayHandler(dayService, badgeService).RegisterRoutes(v1)
		NewMealHandler(mealService, ingredientService, badgeService).RegisterRoutes(v1)
		NewExtraItemHandler(extraItemService, badgeService).RegisterRoutes(v1)
		NewShoppingHandler(badgeService).RegisterRoutes(v1)
	}
}
