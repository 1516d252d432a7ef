package models

import "time"

type ArchiveLog struct {
	ID            int64     `db:"id" json:"id"`
	EditorID      int64     `db:"editor_id" json:"editor_id"`
	EditorName    string    `db:"editor_name" json:"editor_name,omitempty"`
	EditorType    string    `db:"editor_type" json:"editor_type,omitempty"`
	FileName      string    `db:"file_name" json:"file_name"`
	Caption       string    `db:"caption" json:"caption"`
	MediaURL      string    `db:"media_url" json:"media_url"`
	MediaType     string    `db:"media_type" json:"media_type"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	ArchiveReason string    `db:"archive_reason" json:"archive_reason"`
	ArchivedAt    time.Time `db:"archived_at" json:"archived_at"`
}

const (
	ArchiveReasonManual     = "manual"
	ArchiveReasonPurgeOld   = "purge_old"
	ArchiveReasonDailyReset = "daily_reset"
)

type DailyStat struct {
	Date    string `db:"date" json:"date"` // YYYY-MM-DD, local calendar day
	DayName string `db:"day_name" json:"day_name"`
	Reels   int    `db:"reels" json:"reels"`
	Posts   int    `db:"posts" json:"posts"`
}
