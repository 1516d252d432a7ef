package models

import "time"

type Editor struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Type        string    `db:"type" json:"type"` // video, graphic
	Description string    `db:"description" json:"description"`
	SecretLink  string    `db:"secret_link" json:"secret_link"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	EditorTypeVideo   = "video"
	EditorTypeGraphic = "graphic"
)
