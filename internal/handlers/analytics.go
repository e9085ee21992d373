package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLinkAnalytics returns the aggregated click report for one of the
// caller's links.
func (h *Handler) GetLinkAnalytics(c *gin.Context) {
	userID := c.GetUint("user_id")
	shortCode := c.Param("short_code")

	link, err := h.links.FindForUser(shortCode, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "URL not found or you don't have permission."})
		return
	}

	summary, err := h.analytics.Summary(link)
	if err != nil {
		h.logger.Error("failed to build analytics", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load analytics."})
		return
	}

	c.JSON(http.StatusOK, summary)
}
