package models

import (
	"time"
)

// Follow is a directed edge follower -> followed, unique per pair.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Follower  string    `gorm:"size:64;not null;uniqueIndex:idx_follower_followed" json:"follower"`
	Followed  string    `gorm:"size:64;not null;uniqueIndex:idx_follower_followed;index" json:"followed"`
	CreatedAt time.Time `json:"created_at"`
}
