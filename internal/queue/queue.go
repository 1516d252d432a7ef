package queue

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

func EnqueueArchive(asynqClient *asynq.Client, payload ArchiveUploadsPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeArchiveUploads, taskPayload)

	_, err = asynqClient.Enqueue(task)
	if err != nil {
		return err
	}

	log.Printf("Archive task scheduled: %d uploads (%s)", len(payload.UploadIDs), payload.Reason)
	return nil
}

func EnqueuePurge(asynqClient *asynq.Client) error {
	task := asynq.NewTask(TaskTypePurgeUploads, nil)

	_, err := asynqClient.Enqueue(task)
	if err != nil {
		return err
	}

	log.Println("Purge task scheduled")
	return nil
}
