package models

import (
	"time"
)

// Like is at most one per (post, user), enforced by idx_like_post_user.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Username  string    `gorm:"size:64;not null;uniqueIndex:idx_like_post_user;index" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
