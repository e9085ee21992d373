package repository

import (
	"fmt"
	"log"
	"strings"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/config"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the configured database. TranslateError makes the
// dialectors surface unique violations as gorm.ErrDuplicatedKey, which
// is the collision signal the shortener retries on.
func InitDB(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "postgres"):
		dialector = postgres.Open(cfg.DatabaseURL)
	case strings.HasPrefix(cfg.DatabaseURL, "sqlite"):
		dialector = sqlite.Open(strings.TrimPrefix(cfg.DatabaseURL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func RunMigrations(databaseURL string, sourcePath string) error {
	if sourcePath == "" {
		sourcePath = "file://migration"
	}
	m, err := migrate.New(
		sourcePath,
		databaseURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run up migrations: %w", err)
	}

	log.Println("Database migrations ran successfully")
	return nil
}
