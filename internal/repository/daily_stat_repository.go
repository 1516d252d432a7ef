package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/models"
)

type DailyStatRepository interface {
	IncrementCounts(ctx context.Context, tx *sql.Tx, stat *models.DailyStat) error
	ListBetween(ctx context.Context, from, to string) ([]*models.DailyStat, error)
}

type dailyStatRepository struct {
	db *sql.DB
}

func NewDailyStatRepository(db *sql.DB) DailyStatRepository {
	return &dailyStatRepository{db: db}
}

func (r *dailyStatRepository) IncrementCounts(ctx context.Context, tx *sql.Tx, stat *models.DailyStat) error {
	query := `
		INSERT INTO daily_stats (date, day_name, reels, posts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date)
		DO UPDATE SET reels = daily_stats.reels + EXCLUDED.reels,
			posts = daily_stats.posts + EXCLUDED.posts
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, stat.Date, stat.DayName, stat.Reels, stat.Posts)
	} else {
		_, err = r.db.ExecContext(ctx, query, stat.Date, stat.DayName, stat.Reels, stat.Posts)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *dailyStatRepository) ListBetween(ctx context.Context, from, to string) ([]*models.DailyStat, error) {
	query := `SELECT date, day_name, reels, posts FROM daily_stats WHERE date >= $1 AND date <= $2`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var stats []*models.DailyStat
	for rows.Next() {
		var stat models.DailyStat
		err := rows.Scan(&stat.Date, &stat.DayName, &stat.Reels, &stat.Posts)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		stats = append(stats, &stat)
	}
	return stats, nil
}
