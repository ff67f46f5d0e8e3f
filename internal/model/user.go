package model

import (
	"strings"
	"time"
)

// Membership levels. Gold is reached at GoldPointsThreshold points.
const (
	LevelBronze = "Bronze"
	LevelGold   = "Gold"
)

// User represents a registered account in the system.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone          string    `json:"phone,omitempty" gorm:"size:50"`
	Address        string    `json:"address,omitempty" gorm:"size:255"`
	City           string    `json:"city,omitempty" gorm:"size:100"`
	State          string    `json:"state,omitempty" gorm:"size:100"`
	ZipCode        string    `json:"zipCode,omitempty" gorm:"size:20"`
	ProfilePicture string    `json:"profilePicture,omitempty" gorm:"size:512"`
	Bio            string    `json:"bio,omitempty" gorm:"type:text"`
	Points         int       `json:"points" gorm:"default:0"`
	Badges         string    `json:"-" gorm:"type:text"` // semicolon-separated, see BadgeList
	Level          string    `json:"level" gorm:"size:50;default:'Bronze'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const badgeSeparator = ";"

// BadgeList returns the user's badges as a slice.
func (u *User) BadgeList() []string {
	if u.Badges == "" {
		return []string{}
	}
	return strings.Split(u.Badges, badgeSeparator)
}

// HasBadge reports whether the user already holds the named badge.
func (u *User) HasBadge(name string) bool {
	for _, b := range u.BadgeList() {
		if b == name {
			return true
		}
	}
	return false
}

// AddBadge appends a badge if not already held. Returns true when added.
func (u *User) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	if u.Badges == "" {
		u.Badges = name
	} else {
		u.Badges += badgeSeparator + name
	}
	return true
}

// PublicUser is the projection returned to clients. It carries badges as a
// proper list instead of the stored encoding.
type PublicUser struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	ZipCode        string    `json:"zipCode,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Points         int       `json:"points"`
	Badges         []string  `json:"badges"`
	Level          string    `json:"level"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Address:        u.Address,
		City:           u.City,
		State:          u.State,
		ZipCode:        u.ZipCode,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Points:         u.Points,
		Badges:         u.BadgeList(),
		Level:          u.Level,
		CreatedAt:      u.CreatedAt,
	}
}
