package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/gin-gonic/gin"
)

type ShortenRequest struct {
	URL        string     `json:"url" binding:"required,url,max=2048"`
	CustomCode string     `json:"custom_code,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type ShortLinkResponse struct {
	ShortCode    string    `json:"short_code"`
	ShortURL     string    `json:"short_url"`
	OriginalURL  string    `json:"original_url"`
	CreatedAt    time.Time `json:"created_at"`
	ClickCount   uint      `json:"click_count"`
	IsCustomCode bool      `json:"is_custom_code"`
}

func linkResponse(link *models.ShortLink, domain string) ShortLinkResponse {
	return ShortLinkResponse{
		ShortCode:    link.ShortCode,
		ShortURL:     link.ShortURL(domain),
		OriginalURL:  link.OriginalURL,
		CreatedAt:    link.CreatedAt,
		ClickCount:   link.ClickCount,
		IsCustomCode: link.IsCustomCode,
	}
}

// ShortenURL creates a short link. Anonymous callers are welcome, but
// custom codes require an identity so the code can be managed later.
func (h *Handler) ShortenURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	userID := h.identify(c)
	if req.CustomCode != "" && userID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Authentication required for custom short codes."})
		return
	}

	link, err := h.shortener.CreateShortLink(services.ShortenDTO{
		UserID:      userID,
		OriginalURL: req.URL,
		CustomCode:  req.CustomCode,
		ExpiresAt:   req.ExpiresAt,
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, services.ErrCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		case errors.Is(err, services.ErrRetriesExhausted):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		default:
			h.logger.Error("failed to create short link", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to shorten URL."})
		}
		return
	}

	c.JSON(http.StatusCreated, linkResponse(link, h.cfg.SiteDomain))
}
