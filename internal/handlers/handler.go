package handlers

import (
	"log/slog"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/config"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *gorm.DB
	rdb       *redis.Client
	links     *repository.LinkRepository
	shortener *services.ShortenerService
	tracker   *services.ClickTracker
	analytics *services.AnalyticsService
	audit     *services.AuditService
	qr        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	links *repository.LinkRepository,
	shortener *services.ShortenerService,
	tracker *services.ClickTracker,
	analytics *services.AnalyticsService,
	audit *services.AuditService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		rdb:       rdb,
		links:     links,
		shortener: shortener,
		tracker:   tracker,
		analytics: analytics,
		audit:     audit,
		qr:        qr,
	}
}
