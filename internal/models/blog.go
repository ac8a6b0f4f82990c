package models

import "time"

type BlogPostType string

const (
	BlogPostTypeBlog  BlogPostType = "blog"
	BlogPostTypeEvent BlogPostType = "event"
)

// BlogPost covers both studio blog entries and announced events.
type BlogPost struct {
	BaseModel
	Title     string       `gorm:"not null;index" json:"title"`
	Type      BlogPostType `gorm:"default:blog;index" json:"type"`
	Body      string       `json:"body"`
	EventDate *time.Time   `json:"event_date,omitempty"`
	Images    MediaList    `gorm:"type:jsonb" json:"images"`
	Videos    MediaList    `gorm:"type:jsonb" json:"videos"`
}

func (b *BlogPost) MediaLists() []*MediaList {
	return []*MediaList{&b.Images, &b.Videos}
}
