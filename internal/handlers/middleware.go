package handlers

import (
	"net/http"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthRequired accepts a session login or an X-API-Key header and
// stores the resolved user id on the context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := h.identify(c); userID != nil {
			c.Set("user_id", *userID)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required."})
	}
}

// identify resolves the acting identity, or nil for anonymous callers.
// Session wins over API key only in the sense that it is checked first;
// both name the same user model.
func (h *Handler) identify(c *gin.Context) *uint {
	if val, exists := c.Get("user_id"); exists {
		uid := val.(uint)
		return &uid
	}

	session := sessions.Default(c)
	if v := session.Get("user_id"); v != nil {
		uid := v.(uint)
		return &uid
	}

	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		var user models.User
		if err := h.db.Where("api_key = ?", apiKey).First(&user).Error; err == nil {
			return &user.ID
		}
	}

	return nil
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := limiter.GetLimiter(c.ClientIP())
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
