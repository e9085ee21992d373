package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShortLink maps a short code to its original URL. Codes are never
// recycled: records are soft-deleted via IsActive and the unique index
// on ShortCode covers inactive rows too.
type ShortLink struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uint      `gorm:"index:idx_short_links_owner_active" json:"user_id,omitempty"` // Nullable for anonymous
	User         *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	ShortCode    string     `gorm:"uniqueIndex;not null;size:20" json:"short_code"`
	OriginalURL  string     `gorm:"not null;size:2048" json:"original_url"`
	IsCustomCode bool       `gorm:"default:false" json:"is_custom_code"`
	IsActive     bool       `gorm:"default:true;index:idx_short_links_owner_active" json:"is_active"`
	ClickCount   uint       `gorm:"default:0" json:"click_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // nil means never expires

	Clicks []ClickEvent `gorm:"foreignKey:ShortLinkID;constraint:OnDelete:CASCADE" json:"clicks,omitempty"`
}

func (ShortLink) TableName() string {
	return "short_links"
}

func (l *ShortLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the link has passed its expiry time. A link
// expiring exactly now counts as expired.
func (l *ShortLink) IsExpired() bool {
	if l.ExpiresAt == nil {
		return false
	}
	return !time.Now().Before(*l.ExpiresAt)
}

// IsResolvable reports whether the link may satisfy a redirect.
func (l *ShortLink) IsResolvable() bool {
	return l.IsActive && !l.IsExpired()
}

// ShortURL returns the full public URL for the code.
func (l *ShortLink) ShortURL(domain string) string {
	return strings.TrimRight(domain, "/") + "/" + l.ShortCode
}
