package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item statuses. An item report is exactly one of the two.
const (
	StatusLost  = "lost"
	StatusFound = "found"
	// StatusAll is the search sentinel meaning "no status filter".
	StatusAll = "all"
)

// Item represents a lost or found item report owned by a user.
type Item struct {
	ID                uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID            uint       `json:"user_id" gorm:"not null;index"`
	Name              string     `json:"name" gorm:"size:255;not null;index"`
	Category          string     `json:"category" gorm:"size:100;not null;index"`
	Description       string     `json:"description" gorm:"type:text;not null"`
	DateLostOrFound   *time.Time `json:"dateLostOrFound,omitempty"`
	Location          string     `json:"location" gorm:"size:255;not null"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	Color             string     `json:"color,omitempty" gorm:"size:100"`
	UniqueIdentifiers string     `json:"uniqueIdentifiers,omitempty" gorm:"size:512"`
	ContactInfo       string     `json:"contactInfo" gorm:"size:255;not null"`
	Reward            string     `json:"reward,omitempty" gorm:"size:255"`          // lost items only
	DropOffLocation   string     `json:"dropOffLocation,omitempty" gorm:"size:255"` // found items only
	IsEmergency       bool       `json:"isEmergency" gorm:"default:false"`
	Status            string     `json:"status" gorm:"size:10;not null;index"`
	IsResolved        bool       `json:"isResolved" gorm:"default:false;index"`
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt         time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Owner, preloaded for display (name/email only matter to clients).
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SearchCriteria is the conjunctive filter for item searches. Zero values
// impose no constraint.
type SearchCriteria struct {
	Keyword  string
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
	Location string
	Color    string
	Status   string
}
