package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/gin-gonic/gin"
)

const cacheTTL = 10 * time.Minute

// RedirectToURL resolves a short code and issues a temporary redirect,
// recording the click off the response path.
func (h *Handler) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("short_code")
	ctx := c.Request.Context()

	var link models.ShortLink

	cacheHit := false
	if h.rdb != nil {
		if val, err := h.rdb.Get(ctx, "link:"+shortCode).Result(); err == nil {
			if json.Unmarshal([]byte(val), &link) == nil {
				cacheHit = true
			}
		}
	}

	if !cacheHit {
		found, err := h.links.FindByCode(shortCode)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Short URL not found."})
			return
		}
		link = *found

		if h.rdb != nil {
			if data, err := json.Marshal(link); err == nil {
				h.rdb.Set(ctx, "link:"+shortCode, data, cacheTTL)
			}
		}
	}

	// Deactivated and expired codes answer exactly like never-issued
	// ones; the public surface must not reveal which it was.
	if !link.IsResolvable() {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Short URL not found."})
		return
	}

	h.tracker.RecordAsync(services.ClickRequest{
		ShortLinkID:  link.ID,
		RemoteAddr:   c.Request.RemoteAddr,
		ForwardedFor: c.GetHeader("X-Forwarded-For"),
		UserAgent:    c.Request.UserAgent(),
		Referrer:     c.Request.Referer(),
	})

	c.Redirect(http.StatusFound, link.OriginalURL)
}
