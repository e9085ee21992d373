package repository

import (
	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinkRepository owns the short_code -> ShortLink mapping.
type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Insert persists a new link. Uniqueness of the short code is enforced
// by the store's unique index and surfaces as gorm.ErrDuplicatedKey.
// There is deliberately no existence pre-check: a check-then-insert
// would race under concurrent creates.
func (r *LinkRepository) Insert(link *models.ShortLink) error {
	return r.db.Create(link).Error
}

// FindByCode returns the record for a code regardless of active or
// expiry status, so callers can tell a stale code from one that was
// never issued. Resolvability is the caller's call.
func (r *LinkRepository) FindByCode(code string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.Where("short_code = ?", code).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindForUser returns the link only if the given user owns it. Missing
// and not-owned are indistinguishable by design.
func (r *LinkRepository) FindForUser(code string, userID uint) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.Where("short_code = ? AND user_id = ?", code, userID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// IncrementClickCount bumps the counter in a single statement so that
// concurrent redirects never lose updates. UpdateColumn leaves
// updated_at alone: a click is not an edit of the link.
func (r *LinkRepository) IncrementClickCount(id uuid.UUID) error {
	return r.db.Model(&models.ShortLink{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
}

// Deactivate soft-deletes a link and refreshes updated_at. Idempotent.
func (r *LinkRepository) Deactivate(id uuid.UUID) error {
	return r.db.Model(&models.ShortLink{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// ListForUser returns a user's links, most recent first.
func (r *LinkRepository) ListForUser(userID uint, activeOnly bool) ([]models.ShortLink, error) {
	q := r.db.Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	links := make([]models.ShortLink, 0)
	if err := q.Order("created_at desc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
