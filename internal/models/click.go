package models

import (
	"time"

	"github.com/google/uuid"
)

// Device buckets for a click. Unknown is a valid bucket, not an error state.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// ClickEvent is one immutable record of a redirect traversal. The
// denormalized ShortLink.ClickCount is derived from this log, never the
// other way around. Enrichment fields default to empty strings when a
// lookup or parse fails.
type ClickEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ShortLinkID    uuid.UUID `gorm:"type:uuid;not null;index:idx_click_events_link_time,priority:1" json:"shortlink_id"`
	ClickedAt      time.Time `gorm:"autoCreateTime;index:idx_click_events_link_time,priority:2" json:"clicked_at"`
	IPAddress      string    `gorm:"size:45" json:"ip_address"`
	Country        string    `gorm:"size:2;index" json:"country"` // ISO 3166-1 alpha-2
	City           string    `gorm:"size:100" json:"city"`
	Browser        string    `gorm:"size:50" json:"browser"`
	BrowserVersion string    `gorm:"size:20" json:"browser_version"`
	OS             string    `gorm:"size:50" json:"os"`
	OSVersion      string    `gorm:"size:20" json:"os_version"`
	DeviceType     string    `gorm:"size:10;default:unknown" json:"device_type"`
	Referrer       string    `gorm:"size:2048" json:"referrer"`
	UserAgent      string    `gorm:"type:text" json:"user_agent"` // raw header value
}

func (ClickEvent) TableName() string {
	return "click_events"
}
