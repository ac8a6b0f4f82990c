package dto

// CreateProjectRequest carries the scalar fields of a project multipart
// submission. Files arrive separately under the form's file fields; captions
// zip positionally with the submitted files.
type CreateProjectRequest struct {
	Name          string   `form:"name" validate:"required"`
	Category      string   `form:"category"`
	Location      string   `form:"location"`
	Client        string   `form:"client"`
	Year          int      `form:"year"`
	Description   string   `form:"description"`
	Status        string   `form:"status" validate:"omitempty,oneof=draft published"`
	Captions      []string `form:"captions"`
	VideoCaptions []string `form:"video_captions"`
}

// UpdateProjectRequest is the create shape plus the retained-media arrays:
// existing_image_ids lists the media ids to keep (ids omitted are deleted),
// existing_captions carries their possibly edited captions in the same order.
type UpdateProjectRequest struct {
	CreateProjectRequest
	ExistingImageIDs      []string `form:"existing_image_ids"`
	ExistingCaptions      []string `form:"existing_captions"`
	ExistingVideoIDs      []string `form:"existing_video_ids"`
	ExistingVideoCaptions []string `form:"existing_video_captions"`
}

type CreateArticleRequest struct {
	Title       string   `form:"title" validate:"required"`
	Author      string   `form:"author"`
	Category    string   `form:"category"`
	Summary     string   `form:"summary"`
	Body        string   `form:"body"`
	PublishedAt string   `form:"published_at"` // RFC3339, optional
	Captions    []string `form:"captions"`
}

type UpdateArticleRequest struct {
	CreateArticleRequest
	ExistingImageIDs []string `form:"existing_image_ids"`
	ExistingCaptions []string `form:"existing_captions"`
}

type CreateBlogPostRequest struct {
	Title         string   `form:"title" validate:"required"`
	Type          string   `form:"type" validate:"omitempty,oneof=blog event"`
	Body          string   `form:"body"`
	EventDate     string   `form:"event_date"` // RFC3339, optional
	Captions      []string `form:"captions"`
	VideoCaptions []string `form:"video_captions"`
}

type UpdateBlogPostRequest struct {
	CreateBlogPostRequest
	ExistingImageIDs      []string `form:"existing_image_ids"`
	ExistingCaptions      []string `form:"existing_captions"`
	ExistingVideoIDs      []string `form:"existing_video_ids"`
	ExistingVideoCaptions []string `form:"existing_video_captions"`
}
