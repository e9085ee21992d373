package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`           // Nullable for anonymous actions
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g. "CREATE_LINK", "DEACTIVATE_LINK", "LOGIN"
	EntityID  string    `gorm:"size:50" json:"entity_id"`       // short code or user id affected
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
