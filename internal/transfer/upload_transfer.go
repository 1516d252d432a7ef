package transfer

type UploadCreation struct {
	Caption       string `json:"caption"`
	MediaType     string `json:"media_type"`
	FileName      string `json:"file_name"`
	MediaURL      string `json:"media_url"`
	MediaPath     string `json:"media_path,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	FileSize      int64  `json:"file_size,omitempty"`
}

type SignRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type SignedUpload struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
