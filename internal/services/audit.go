package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"

	"gorm.io/gorm"
)

// AuditService records account and link mutations on a background
// worker so request handling never waits on audit writes.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		entries: make(chan models.AuditLog, 100),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("audit worker starting")
	for {
		select {
		case entry := <-s.entries:
			if err := s.db.Create(&entry).Error; err != nil {
				s.logger.Error("failed to write audit log", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("audit worker stopping")
			return
		}
	}
}

// LogAction queues an audit entry. A full queue drops the entry.
func (s *AuditService) LogAction(userID *uint, action, entityID string, details any, ip string) {
	detailBytes, _ := json.Marshal(details)

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   string(detailBytes),
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("audit queue full, dropping entry", "action", action)
	}
}
