package models

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

// Project is a built or ongoing work shown in the firm's portfolio.
type Project struct {
	BaseModel
	Name        string        `gorm:"not null;index" json:"name"`
	Category    string        `gorm:"index" json:"category"` // residential, commercial, ...
	Location    string        `json:"location"`
	Client      string        `json:"client"`
	Year        int           `json:"year"`
	Description string        `json:"description"`
	Status      ProjectStatus `gorm:"default:published;index" json:"status"`
	Images      MediaList     `gorm:"type:jsonb" json:"images"`
	Videos      MediaList     `gorm:"type:jsonb" json:"videos"`
}

// MediaLists exposes every media sequence the project owns, in a fixed order,
// for cascade deletion and migration.
func (p *Project) MediaLists() []*MediaList {
	return []*MediaList{&p.Images, &p.Videos}
}
