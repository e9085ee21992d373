package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type LinkInfoResponse struct {
	ShortCode    string     `json:"short_code"`
	ShortURL     string     `json:"short_url"`
	OriginalURL  string     `json:"original_url"`
	IsActive     bool       `json:"is_active"`
	IsCustomCode bool       `json:"is_custom_code"`
	ClickCount   uint       `json:"click_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// ListUserLinks returns the caller's links, most recent first. Pass
// ?active=true to hide deactivated ones.
func (h *Handler) ListUserLinks(c *gin.Context) {
	userID := c.GetUint("user_id")
	activeOnly := c.Query("active") == "true"

	links, err := h.links.ListForUser(userID, activeOnly)
	if err != nil {
		h.logger.Error("failed to list links", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list links."})
		return
	}

	out := make([]LinkInfoResponse, 0, len(links))
	for i := range links {
		link := &links[i]
		out = append(out, LinkInfoResponse{
			ShortCode:    link.ShortCode,
			ShortURL:     link.ShortURL(h.cfg.SiteDomain),
			OriginalURL:  link.OriginalURL,
			IsActive:     link.IsActive,
			IsCustomCode: link.IsCustomCode,
			ClickCount:   link.ClickCount,
			CreatedAt:    link.CreatedAt,
			UpdatedAt:    link.UpdatedAt,
			ExpiresAt:    link.ExpiresAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"links": out, "count": len(out)})
}

// GetLinkInfo returns management metadata for one of the caller's links.
// A code owned by someone else answers like a missing one.
func (h *Handler) GetLinkInfo(c *gin.Context) {
	userID := c.GetUint("user_id")
	shortCode := c.Param("short_code")

	link, err := h.links.FindForUser(shortCode, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "URL not found or you don't have permission."})
		return
	}

	c.JSON(http.StatusOK, LinkInfoResponse{
		ShortCode:    link.ShortCode,
		ShortURL:     link.ShortURL(h.cfg.SiteDomain),
		OriginalURL:  link.OriginalURL,
		IsActive:     link.IsActive,
		IsCustomCode: link.IsCustomCode,
		ClickCount:   link.ClickCount,
		CreatedAt:    link.CreatedAt,
		UpdatedAt:    link.UpdatedAt,
		ExpiresAt:    link.ExpiresAt,
	})
}

// DeactivateLink soft-deletes one of the caller's links. The code stays
// reserved so it can never be re-issued to someone else.
func (h *Handler) DeactivateLink(c *gin.Context) {
	userID := c.GetUint("user_id")
	shortCode := c.Param("short_code")

	link, err := h.links.FindForUser(shortCode, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "URL not found or you don't have permission."})
		return
	}

	if err := h.links.Deactivate(link.ID); err != nil {
		h.logger.Error("failed to deactivate link", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to deactivate URL."})
		return
	}

	if h.rdb != nil {
		h.rdb.Del(c.Request.Context(), "link:"+shortCode)
	}

	h.audit.LogAction(&userID, "DEACTIVATE_LINK", shortCode, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"detail": "URL deactivated."})
}
