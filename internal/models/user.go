package models

import (
	"time"
)

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"unique;not null;size:80" json:"username"`
	Email        string      `gorm:"unique;not null;size:120" json:"email"`
	PasswordHash string      `gorm:"not null;size:255" json:"-"`
	APIKey       string      `gorm:"uniqueIndex;size:64" json:"api_key"`
	CreatedAt    time.Time   `json:"created_at"`
	Links        []ShortLink `gorm:"foreignKey:UserID" json:"links,omitempty"`
}
