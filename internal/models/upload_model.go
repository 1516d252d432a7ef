package models

import "time"

type Upload struct {
	ID            int64     `db:"id" json:"id"`
	EditorID      int64     `db:"editor_id" json:"editor_id"`
	FileName      string    `db:"file_name" json:"file_name"`
	Caption       string    `db:"caption" json:"caption"`
	MediaURL      string    `db:"media_url" json:"media_url"`
	MediaPath     string    `db:"media_path" json:"media_path,omitempty"`
	MediaType     string    `db:"media_type" json:"media_type"` // video, image
	ThumbnailURL  string    `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	ThumbnailPath string    `db:"thumbnail_path" json:"thumbnail_path,omitempty"`
	FileSize      int64     `db:"file_size" json:"file_size,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

const (
	MediaTypeVideo = "video"
	MediaTypeImage = "image"
)
