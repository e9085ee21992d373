package services

import (
	"log/slog"
	"os"
	"testing"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ShortLink{}, &models.ClickEvent{}, &models.AuditLog{}))
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func setupShortener(t *testing.T, db *gorm.DB) *ShortenerService {
	t.Helper()
	audit := NewAuditService(db, testLogger())
	return NewShortenerService(repository.NewLinkRepository(db), audit, testLogger(), 7, 5)
}
