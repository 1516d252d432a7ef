package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/hibiken/asynq"
)

func (q *Queue) HandleArchiveUploadsTask(ctx context.Context, task *asynq.Task) error {
	var payload ArchiveUploadsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if payload.Reason == "" {
		payload.Reason = models.ArchiveReasonManual
	}

	count, err := q.as.ArchiveUploads(ctx, payload.UploadIDs, payload.Reason)
	if err != nil {
		log.Printf("Error archiving uploads: %v", err)
		return err
	}

	log.Printf("Archived %d uploads (%s)", count, payload.Reason)
	return nil
}

func (q *Queue) HandlePurgeTask(ctx context.Context, task *asynq.Task) error {
	count, err := q.as.PurgeOld(ctx)
	if err != nil {
		log.Printf("Error purging uploads: %v", err)
		return err
	}

	log.Printf("Purged %d old uploads", count)
	return nil
}
