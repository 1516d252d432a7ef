package job

import (
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/queue"
	"github.com/hibiken/asynq"
)

// PurgeJob enqueues the nightly purge of uploads older than a week. The
// archive worker does the actual work so manual and scheduled purges share
// one code path.
type PurgeJob struct {
	client *asynq.Client
}

func NewPurgeJob(client *asynq.Client) *PurgeJob {
	return &PurgeJob{client: client}
}

func (j *PurgeJob) Run() {
	if err := queue.EnqueuePurge(j.client); err != nil {
		slog.Info("failed to enqueue purge task", "error", err.Error())
	}
}
