package models

import (
	"time"
)

type PostKind string

const (
	PostKindStory PostKind = "story"
	PostKindQuote PostKind = "quote"
)

func (k PostKind) Valid() bool {
	return k == PostKindStory || k == PostKindQuote
}

type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Username string   `gorm:"size:64;not null;index" json:"username"` // author handle
	Content  string   `gorm:"type:text;not null" json:"content"`
	Kind     PostKind `gorm:"column:type;size:16;not null;index;check:type = 'story' OR type = 'quote'" json:"type"`
	// OriginalAuthor is set only on reposts and names the author of the reposted post.
	OriginalAuthor *string   `gorm:"size:64" json:"original_author,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (p *Post) IsRepost() bool {
	return p.OriginalAuthor != nil
}

// PostView is a post as shown in a feed.
type PostView struct {
	Post
	Comments      []Comment `json:"comments"`
	LikeCount     int64     `json:"likes"`
	LikedByViewer bool      `json:"liked"`
}
