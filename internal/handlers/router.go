package handlers

import (
	"net/http"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the full route table. The redirect route is
// registered last so /health and /api never shadow-match as codes.
func (h *Handler) SetupRouter(limiter *services.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   h.cfg.AppEnv == "production",
	})
	r.Use(sessions.Sessions("structo_session", store))

	if limiter != nil {
		r.Use(h.RateLimitMiddleware(limiter))
	}

	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/register", h.RegisterUser)
		api.POST("/login", h.LoginUser)
		api.POST("/logout", h.LogoutUser)
		api.POST("/shorten", h.ShortenURL)
		api.GET("/urls/:short_code/qr", h.GetLinkQR)

		authed := api.Group("")
		authed.Use(h.AuthRequired())
		{
			authed.POST("/apikey", h.RotateAPIKey)
			authed.DELETE("/account", h.DeleteAccount)
			authed.GET("/urls", h.ListUserLinks)
			authed.GET("/urls/:short_code", h.GetLinkInfo)
			authed.DELETE("/urls/:short_code", h.DeactivateLink)
			authed.GET("/urls/:short_code/analytics", h.GetLinkAnalytics)
		}
	}

	r.GET("/:short_code", h.RedirectToURL)

	return r
}

// HealthCheck reports process liveness plus dependency reachability.
// Redis being down degrades the report but not the status code: the
// service still serves redirects from the database.
func (h *Handler) HealthCheck(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	status["database"] = "ok"

	if h.rdb != nil {
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "unreachable"
		} else {
			status["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, status)
}
