package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types.
const (
	NotificationMatch     = "match"
	NotificationPoints    = "points"
	NotificationBadge     = "badge"
	NotificationGold      = "gold"
	NotificationFoundItem = "found_item"
)

// Notification represents an in-app notification for a user. Notifications
// are listed newest-first.
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Type      string         `json:"type" gorm:"size:32;not null"`
	Message   string         `json:"message" gorm:"size:512;not null"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	IsRead    bool           `json:"isRead" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"date" gorm:"index"`
}
