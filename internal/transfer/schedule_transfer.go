package transfer

// MediaItem is one pending item handed to the batch scheduler. It is a
// read-only snapshot of an upload record; SourceID ties a successful publish
// back to the record that may later be archived.
type MediaItem struct {
	SourceID      string `json:"id,omitempty"`
	MediaType     string `json:"media_type"`
	MediaURL      string `json:"media_url"`
	FileName      string `json:"file_name,omitempty"`
	Caption       string `json:"caption"`
	ScheduledTime string `json:"scheduled_time,omitempty"` // explicit override, RFC 3339
}

type ScheduleRequest struct {
	Items []MediaItem `json:"items"`
}

// PublishResult holds the raw platform envelopes for one publish attempt.
// PostID is the identifier extracted from the final response ("id" preferred
// over "post_id"); an empty PostID is the failure marker, the platform does
// not send an explicit status.
type PublishResult struct {
	PostID string                 `json:"post_id,omitempty"`
	Video  map[string]interface{} `json:"video,omitempty"`
	Feed   map[string]interface{} `json:"feed,omitempty"`
	Photo  map[string]interface{} `json:"photo,omitempty"`
	Post   map[string]interface{} `json:"post,omitempty"`
}

func (r *PublishResult) Succeeded() bool {
	return r != nil && r.PostID != ""
}

// ExtractPostID pulls the platform identifier out of a response envelope,
// preferring "id" over "post_id".
func ExtractPostID(resp map[string]interface{}) string {
	if resp == nil {
		return ""
	}
	if id, ok := resp["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := resp["post_id"].(string); ok && id != "" {
		return id
	}
	return ""
}

// ScheduledEntry is one row of a batch report. Exactly one of Response and
// Error is set for the primary platform; the Instagram fields are best-effort
// and never influence the primary outcome.
type ScheduledEntry struct {
	Item              MediaItem              `json:"item"`
	ScheduledTime     string                 `json:"scheduled_time,omitempty"`
	Response          *PublishResult         `json:"response,omitempty"`
	Error             string                 `json:"error,omitempty"`
	InstagramResponse map[string]interface{} `json:"instagram_response,omitempty"`
	InstagramError    string                 `json:"instagram_error,omitempty"`
}

type BatchReport struct {
	Entries   []ScheduledEntry `json:"entries"`
	Processed int              `json:"processed"`
	Total     int              `json:"total"`
	// ArchivableIDs lists source ids of items whose primary publish returned
	// a usable identifier. Archival itself is the caller's call.
	ArchivableIDs []string `json:"archivable_ids,omitempty"`
}
