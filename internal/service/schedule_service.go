package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/schedule"
	"github.com/ankithstudio/mediadesk/internal/transfer"
)

var (
	ErrNoItems            = errors.New("no items provided")
	ErrMissingCredentials = errors.New("page credentials are not configured")
)

// publishConcurrency is the number of in-flight publish attempts per batch.
// The loop relies on this staying 1: scheduled-time collisions and platform
// rate limits are reasoned about under strict sequencing.
const publishConcurrency = 1

type ScheduleService interface {
	// ScheduleBatch publishes every item once, in partition order (videos
	// before images), and reports per-item outcomes. A failed item never
	// stops the batch. Re-running a batch sends no idempotency key; operators
	// should archive the reported archivable ids before retrying failures.
	ScheduleBatch(ctx context.Context, items []transfer.MediaItem) (*transfer.BatchReport, error)
}

type scheduleService struct {
	cfg config.Config
	fb  FacebookService
	ig  InstagramService
	now func() time.Time
}

func NewScheduleService(cfg config.Config, fb FacebookService, ig InstagramService) ScheduleService {
	return &scheduleService{
		cfg: cfg,
		fb:  fb,
		ig:  ig,
		now: time.Now,
	}
}

func (s *scheduleService) ScheduleBatch(ctx context.Context, items []transfer.MediaItem) (*transfer.BatchReport, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if s.cfg.PageID == "" || s.cfg.PageToken == "" {
		return nil, ErrMissingCredentials
	}

	var videos, images []transfer.MediaItem
	for _, item := range items {
		if item.MediaType == models.MediaTypeVideo {
			videos = append(videos, item)
		} else {
			images = append(images, item)
		}
	}

	targetDate := schedule.TargetDate(s.now())

	report := &transfer.BatchReport{
		Total: len(items),
	}

	s.processPartition(ctx, videos, models.MediaTypeVideo, targetDate, report)
	s.processPartition(ctx, images, models.MediaTypeImage, targetDate, report)

	return report, nil
}

func (s *scheduleService) processPartition(ctx context.Context, items []transfer.MediaItem, mediaType string, targetDate time.Time, report *transfer.BatchReport) {
	for i, item := range items {
		report.Entries = append(report.Entries, s.publishOne(ctx, item, mediaType, i, targetDate, report))
		report.Processed++
		slog.Info("batch progress",
			"processed", report.Processed,
			"total", report.Total,
			"media_type", mediaType,
		)
	}
}

func (s *scheduleService) publishOne(ctx context.Context, item transfer.MediaItem, mediaType string, index int, targetDate time.Time, report *transfer.BatchReport) transfer.ScheduledEntry {
	entry := transfer.ScheduledEntry{Item: item}

	publishAt, err := schedule.Resolve(item.ScheduledTime, mediaType, index, targetDate)
	if err != nil {
		// Bad explicit time sinks only this item; the other slots are
		// allocated from the partition index and stay untouched.
		entry.Error = err.Error()
		return entry
	}
	entry.ScheduledTime = publishAt.Format(time.RFC3339)

	result, err := s.fb.SchedulePost(ctx, item, publishAt)
	if err != nil {
		slog.Info("publish failed", "file_name", item.FileName, "error", err.Error())
		entry.Error = err.Error()
		return entry
	}
	entry.Response = result

	if result.Succeeded() && item.SourceID != "" {
		report.ArchivableIDs = append(report.ArchivableIDs, item.SourceID)
	}

	if s.cfg.CrossPostEnabled {
		igResp, igErr := s.ig.CrossPost(ctx, item, publishAt)
		if igErr != nil {
			slog.Info("cross-post failed", "file_name", item.FileName, "error", igErr.Error())
			entry.InstagramError = igErr.Error()
		} else {
			entry.InstagramResponse = igResp
		}
	}

	return entry
}
