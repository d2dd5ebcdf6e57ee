package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinnerplan/backend/internal/service"
)

type ShoppingHandler struct {
	badgeService *service.BadgeService
}

func NewShoppingHandler(badgeService *service.BadgeService) *ShoppingHandler {
	return &ShoppingHandler{badgeService: badgeService}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/shopping/badge", h.GetBadge)
	router.GET("/shopping/badge/stream", h.StreamBadge)
}

// GetBadge returns the shopping badge counts: open extra items and
// current-week days with unbought ingredients.
func (h *ShoppingHandler) GetBadge(c *gin.Context) {
	counts, err := h.badgeService.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute badge"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// StreamBadge pushes badge counts as server-sent events: the current value
// immediately, then one event per invalidation until the client disconnects.
func (h *ShoppingHandler) StreamBadge(c *gin.Context) {
	counts, err := h.badgeService.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute badge"})
		return
	}

	ch := h.badgeService.Subscribe()
	defer h.badgeService.Unsubscribe(ch)

	c.SSEvent("badge", counts)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case update, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("badge", update)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
