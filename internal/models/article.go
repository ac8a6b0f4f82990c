package models

import "time"

// Article is a long-form editorial piece (press, research, essays).
type Article struct {
	BaseModel
	Title       string     `gorm:"not null;index" json:"title"`
	Author      string     `json:"author"`
	Category    string     `gorm:"index" json:"category"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Images      MediaList  `gorm:"type:jsonb" json:"images"`
}

func (a *Article) MediaLists() []*MediaList {
	return []*MediaList{&a.Images}
}
