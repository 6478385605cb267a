package photo

import "time"

// UploadRequest carries the multipart form fields accompanying the file
type UploadRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Category    string `json:"category" validate:"photo_category"`
}

// UpdateRequest edits photo metadata. The image file itself is immutable.
type UpdateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Category    string `json:"category" validate:"photo_category"`
}

// CommentRequest carries a new comment body
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// PhotoResponse is the public view of a photo with resolved URLs
type PhotoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	ThumbURL    string    `json:"thumb_url,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}

// DetailResponse bundles a photo with its comments
type DetailResponse struct {
	Photo    PhotoResponse `json:"photo"`
	Comments []*Comment    `json:"comments"`
}

// LikeResponse mirrors the counter state after a like
type LikeResponse struct {
	Likes int `json:"likes"`
}
