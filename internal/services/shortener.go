package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"
	"github.com/AppFusion-boop/StructoUrlShortener/pkg/utils"

	"gorm.io/gorm"
)

type ShortenDTO struct {
	UserID      *uint
	OriginalURL string
	CustomCode  string
	ExpiresAt   *time.Time
	IPAddress   string // for the audit trail
}

type ShortenerService struct {
	links         *repository.LinkRepository
	audit         *AuditService
	logger        *slog.Logger
	codeLength    int
	maxRetries    int
	codeGenerator func(int) string
}

func NewShortenerService(links *repository.LinkRepository, audit *AuditService, logger *slog.Logger, codeLength, maxRetries int) *ShortenerService {
	return &ShortenerService{
		links:         links,
		audit:         audit,
		logger:        logger,
		codeLength:    codeLength,
		maxRetries:    maxRetries,
		codeGenerator: utils.GenerateShortCode,
	}
}

// CreateShortLink creates a new mapping for dto.OriginalURL.
//
// A custom code is normalized, validated and inserted exactly once; a
// duplicate becomes ErrCodeTaken. Without a custom code the service
// generates candidates, growing the code by one character per collision
// so the keyspace outpaces existing-code density. In both paths the
// store's unique constraint is the only collision check.
//
// Custom codes require an owner; callers must reject anonymous
// custom-code requests before getting here.
func (s *ShortenerService) CreateShortLink(dto ShortenDTO) (*models.ShortLink, error) {
	if dto.CustomCode != "" {
		return s.createWithCustomCode(dto)
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		code := s.codeGenerator(s.codeLength + attempt)
		link := s.buildLink(dto, code, false)

		err := s.links.Insert(link)
		if err == nil {
			s.logCreated(dto, link)
			return link, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("short code collision, retrying with longer code",
				"attempt", attempt+1, "length", s.codeLength+attempt)
			continue
		}
		return nil, err
	}

	return nil, ErrRetriesExhausted
}

func (s *ShortenerService) createWithCustomCode(dto ShortenDTO) (*models.ShortLink, error) {
	code := strings.ToLower(strings.TrimSpace(dto.CustomCode))
	if !utils.IsValidCustomCode(code) {
		return nil, ErrInvalidCode
	}

	link := s.buildLink(dto, code, true)
	if err := s.links.Insert(link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}

	s.logCreated(dto, link)
	return link, nil
}

func (s *ShortenerService) buildLink(dto ShortenDTO, code string, custom bool) *models.ShortLink {
	return &models.ShortLink{
		UserID:       dto.UserID,
		ShortCode:    code,
		OriginalURL:  dto.OriginalURL,
		IsCustomCode: custom,
		IsActive:     true,
		ExpiresAt:    dto.ExpiresAt,
	}
}

func (s *ShortenerService) logCreated(dto ShortenDTO, link *models.ShortLink) {
	s.audit.LogAction(dto.UserID, "CREATE_LINK", link.ShortCode, map[string]any{
		"original_url": dto.OriginalURL,
	}, dto.IPAddress)
}
