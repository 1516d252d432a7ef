package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/repository"
	"github.com/ankithstudio/mediadesk/internal/transfer"
)

type StatsService interface {
	// WeeklyStats builds the Monday-to-Sunday view of the current week:
	// persisted daily_stats (archived history) plus uploads still pending.
	WeeklyStats(ctx context.Context) (*transfer.WeeklyStats, error)
}

type statsService struct {
	ur  repository.UploadRepository
	ds  repository.DailyStatRepository
	now func() time.Time
}

func NewStatsService(ur repository.UploadRepository, ds repository.DailyStatRepository) StatsService {
	return &statsService{
		ur:  ur,
		ds:  ds,
		now: time.Now,
	}
}

func (s *statsService) WeeklyStats(ctx context.Context) (*transfer.WeeklyStats, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Week runs Monday..Sunday.
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -daysSinceMonday)
	sunday := monday.AddDate(0, 0, 6)

	persisted, err := s.ds.ListBetween(ctx, monday.Format("2006-01-02"), sunday.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("error loading daily stats: %w", err)
	}

	persistedByDate := make(map[string]*models.DailyStat, len(persisted))
	for _, stat := range persisted {
		persistedByDate[stat.Date] = stat
	}

	days := make([]transfer.DayStats, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		days[i] = transfer.DayStats{
			Date:    key,
			DayName: date.Weekday().String(),
		}
		if stat, ok := persistedByDate[key]; ok {
			days[i].Reels = stat.Reels
			days[i].Posts = stat.Posts
		}
		index[key] = i
	}

	// Active uploads haven't been folded into daily_stats yet, so add them
	// on top without double counting.
	uploads, err := s.ur.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}

	for _, upload := range uploads {
		key := upload.CreatedAt.In(now.Location()).Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			continue
		}
		if upload.MediaType == models.MediaTypeVideo {
			days[i].Reels++
		} else {
			days[i].Posts++
		}
	}

	result := &transfer.WeeklyStats{WeeklyStats: days}
	for i := range days {
		days[i].Total = days[i].Reels + days[i].Posts
		result.WeeklyStats[i] = days[i]
		result.WeeklyTotals.Reels += days[i].Reels
		result.WeeklyTotals.Posts += days[i].Posts
	}

	return result, nil
}
