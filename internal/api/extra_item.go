package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinnerplan/backend/internal/service"
)

type ExtraItemHandler struct {
	extraItemService *service.ExtraItemService
	badgeService     *service.BadgeService
}

func NewExtraItemHandler(extraItemService *service.ExtraItemService, badgeService *service.BadgeService) *ExtraItemHandler {
	return &ExtraItemHandler{extraItemService: extraItemService, badgeService: badgeService}
}

func (h *ExtraItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/extra-items")
	{
		items.GET("", h.ListExtraItems)
		items.GET("/:id", h.GetExtraItem)
		items.POST("", h.CreateExtraItem)
		items.PUT("/:id", h.UpdateExtraItem)
		items.DELETE("/:id", h.DeleteExtraItem)
	}
}

// ListExtraItems lists one-off items; ?bought=false narrows to the open
// shopping list.
func (h *ExtraItemHandler) ListExtraItems(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("bought") == "false" {
		items, err := h.extraItemService.ListNotBought(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch extra items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"extra_items": items})
		return
	}
	items, err := h.extraItemService.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch extra items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"extra_items": items})
}

func (h *ExtraItemHandler) GetExtraItem(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	item, err := h.extraItemService.Get(c.Request.Context(), id)
	if err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Extra item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch extra item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ExtraItemHandler) CreateExtraItem(c *gin.Context) {
	var req service.CreateExtraItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.extraItemService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create extra item"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, item)
}

func (h *ExtraItemHandler) UpdateExtraItem(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req service.UpdateExtraItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.extraItemService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Extra item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update extra item"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, item)
}

func (h *ExtraItemHandler) DeleteExtraItem(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.extraItemService.Delete(c.Request.Context(), id); err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Extra item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete extra item"})
		return
	}
	h.badgeService.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}
