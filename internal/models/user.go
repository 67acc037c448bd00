package models

import (
	"time"
)

const (
	DefaultBio    = "Spreading hope."
	DefaultAvatar = "default-avatar.png"
)

// User is keyed by Username everywhere else in the schema; ID is only the row id.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Bio       string    `gorm:"size:200;default:'Spreading hope.'" json:"bio"`
	Avatar    string    `gorm:"default:'default-avatar.png'" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
