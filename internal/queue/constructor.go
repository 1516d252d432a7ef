package queue

import (
	"github.com/ankithstudio/mediadesk/internal/service"
)

type Queue struct {
	as service.ArchiveService
}

func NewQueue(as service.ArchiveService) *Queue {
	return &Queue{
		as: as,
	}
}

const (
	TaskTypeArchiveUploads = "archive:uploads"
	TaskTypePurgeUploads   = "archive:purge"
)

type ArchiveUploadsPayload struct {
	UploadIDs []string `json:"upload_ids"`
	Reason    string   `json:"reason"`
}
