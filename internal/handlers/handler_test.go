package handlers

import (
	"log/slog"
	"os"
	"testing"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/config"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// In-memory sqlite gives every connection its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ShortLink{}, &models.ClickEvent{}, &models.AuditLog{}))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret: "test-secret-12345678901234567890123456789012",
		SiteDomain:    "http://sho.rt",
		CodeLength:    7,
		MaxRetries:    5,
	}

	links := repository.NewLinkRepository(db)
	clicks := repository.NewClickRepository(db)
	audit := services.NewAuditService(db, logger)
	geoip := services.NewGeoIPService(logger)
	tracker := services.NewClickTracker(clicks, links, geoip, logger)
	shortener := services.NewShortenerService(links, audit, logger, cfg.CodeLength, cfg.MaxRetries)
	analytics := services.NewAnalyticsService(clicks)
	qr := services.NewQRService()

	// Dummy redis client pointing nowhere: every cache call misses fast.
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	h := NewHandler(cfg, logger, db, rdb, links, shortener, tracker, analytics, audit, qr)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		APIKey:       "structo_test_" + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestLink(t *testing.T, db *gorm.DB, code string, userID *uint) *models.ShortLink {
	t.Helper()
	link := &models.ShortLink{
		UserID:      userID,
		ShortCode:   code,
		OriginalURL: "https://example.com/" + code,
		IsActive:    true,
	}
	require.NoError(t, db.Create(link).Error)
	return link
}
