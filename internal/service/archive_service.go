package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/repository"
)

// purgeAge is how old an upload must be before the purge pass archives it.
const purgeAge = 7 * 24 * time.Hour

type ArchiveService interface {
	// ArchiveUploads moves uploads into the archive logs and deletes the
	// records. An empty id list archives everything pending. Unparseable ids
	// are skipped, matching the forgiving id handling of the dashboard.
	ArchiveUploads(ctx context.Context, uploadIDs []string, reason string) (int, error)
	PurgeOld(ctx context.Context) (int, error)
	ResetDaily(ctx context.Context) (int, error)
	ListLogs(ctx context.Context) ([]*models.ArchiveLog, error)
	RemoveLogs(ctx context.Context, logIDs []string) (int, error)
}

type archiveService struct {
	ur  repository.UploadRepository
	ar  repository.ArchiveLogRepository
	ds  repository.DailyStatRepository
	now func() time.Time
}

func NewArchiveService(
	ur repository.UploadRepository,
	ar repository.ArchiveLogRepository,
	ds repository.DailyStatRepository) ArchiveService {
	return &archiveService{
		ur:  ur,
		ar:  ar,
		ds:  ds,
		now: time.Now,
	}
}

func (s *archiveService) ArchiveUploads(ctx context.Context, uploadIDs []string, reason string) (int, error) {
	if reason == "" {
		reason = models.ArchiveReasonManual
	}

	var uploads []*models.Upload
	var err error

	ids := parseIDs(uploadIDs)
	if len(ids) > 0 {
		uploads, err = s.ur.ListByIDs(ctx, ids)
	} else {
		uploads, err = s.ur.List(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("error listing uploads to archive: %w", err)
	}

	if len(uploads) == 0 {
		return 0, nil
	}

	if err := s.archive(ctx, uploads, reason); err != nil {
		return 0, err
	}

	if len(ids) > 0 {
		if _, err := s.ur.RemoveByIDs(ctx, nil, ids); err != nil {
			return 0, fmt.Errorf("error removing archived uploads: %w", err)
		}
	} else {
		for _, upload := range uploads {
			if err := s.ur.Remove(ctx, upload.ID); err != nil {
				return 0, fmt.Errorf("error removing archived upload %d: %w", upload.ID, err)
			}
		}
	}

	return len(uploads), nil
}

func (s *archiveService) PurgeOld(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-purgeAge)

	uploads, err := s.ur.ListOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error listing old uploads: %w", err)
	}

	if len(uploads) == 0 {
		return 0, nil
	}

	if err := s.archive(ctx, uploads, models.ArchiveReasonPurgeOld); err != nil {
		return 0, err
	}

	deleted, err := s.ur.RemoveOlderThan(ctx, nil, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error purging uploads: %w", err)
	}

	return int(deleted), nil
}

func (s *archiveService) ResetDaily(ctx context.Context) (int, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	uploads, err := s.ur.ListBetween(ctx, today, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("error listing today's uploads: %w", err)
	}

	if len(uploads) == 0 {
		return 0, nil
	}

	if err := s.archive(ctx, uploads, models.ArchiveReasonDailyReset); err != nil {
		return 0, err
	}

	deleted, err := s.ur.RemoveBetween(ctx, nil, today, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("error resetting daily uploads: %w", err)
	}

	return int(deleted), nil
}

// archive writes the log rows and folds the archived counts into daily_stats
// so the weekly graph survives the upload deletion.
func (s *archiveService) archive(ctx context.Context, uploads []*models.Upload, reason string) error {
	logs := make([]*models.ArchiveLog, 0, len(uploads))
	for _, upload := range uploads {
		logs = append(logs, &models.ArchiveLog{
			EditorID:      upload.EditorID,
			FileName:      upload.FileName,
			Caption:       upload.Caption,
			MediaURL:      upload.MediaURL,
			MediaType:     upload.MediaType,
			CreatedAt:     upload.CreatedAt,
			ArchiveReason: reason,
		})
	}

	if err := s.ar.CreateMany(ctx, nil, logs); err != nil {
		return fmt.Errorf("error writing archive logs: %w", err)
	}

	type counts struct{ reels, posts int }
	byDate := make(map[string]*counts)
	for _, upload := range uploads {
		key := upload.CreatedAt.Local().Format("2006-01-02")
		c, ok := byDate[key]
		if !ok {
			c = &counts{}
			byDate[key] = c
		}
		if upload.MediaType == models.MediaTypeVideo {
			c.reels++
		} else {
			c.posts++
		}
	}

	for date, c := range byDate {
		stat := &models.DailyStat{
			Date:    date,
			DayName: date,
			Reels:   c.reels,
			Posts:   c.posts,
		}
		if day, err := time.ParseInLocation("2006-01-02", date, time.Local); err == nil {
			stat.DayName = day.Weekday().String()
		}
		if err := s.ds.IncrementCounts(ctx, nil, stat); err != nil {
			return fmt.Errorf("error updating daily stats for %s: %w", date, err)
		}
	}

	return nil
}

func (s *archiveService) ListLogs(ctx context.Context) ([]*models.ArchiveLog, error) {
	logs, err := s.ar.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing archive logs: %w", err)
	}
	return logs, nil
}

func (s *archiveService) RemoveLogs(ctx context.Context, logIDs []string) (int, error) {
	ids := parseIDs(logIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("no valid log ids provided")
	}

	deleted, err := s.ar.RemoveByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("error removing logs: %w", err)
	}
	return int(deleted), nil
}

func parseIDs(raw []string) []int64 {
	var ids []int64
	for _, value := range raw {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			slog.Info("skipping unparseable id", "id", value)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
