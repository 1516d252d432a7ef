package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/lib/pq"
)

type ArchiveLogRepository interface {
	CreateMany(ctx context.Context, tx *sql.Tx, logs []*models.ArchiveLog) error
	List(ctx context.Context) ([]*models.ArchiveLog, error)
	RemoveByIDs(ctx context.Context, ids []int64) (int64, error)
	RemoveByEditor(ctx context.Context, editorID int64) error
}

type archiveLogRepository struct {
	db *sql.DB
}

func NewArchiveLogRepository(db *sql.DB) ArchiveLogRepository {
	return &archiveLogRepository{db: db}
}

func (r *archiveLogRepository) CreateMany(ctx context.Context, tx *sql.Tx, logs []*models.ArchiveLog) error {
	query := `
		INSERT INTO archive_logs (editor_id, file_name, caption, media_url, media_type, created_at, archive_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, l := range logs {
		var err error
		args := []interface{}{l.EditorID, l.FileName, l.Caption, l.MediaURL, l.MediaType, l.CreatedAt, l.ArchiveReason}

		if tx != nil {
			_, err = tx.ExecContext(ctx, query, args...)
		} else {
			_, err = r.db.ExecContext(ctx, query, args...)
		}
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}

func (r *archiveLogRepository) List(ctx context.Context) ([]*models.ArchiveLog, error) {
	query := `
		SELECT l.id, l.editor_id, COALESCE(e.name, ''), COALESCE(e.type, ''), l.file_name, l.caption, l.media_url, l.media_type, l.created_at, l.archive_reason, l.archived_at
		FROM archive_logs l
		LEFT JOIN editors e ON e.id = l.editor_id
		ORDER BY l.archived_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var logs []*models.ArchiveLog
	for rows.Next() {
		var l models.ArchiveLog
		err := rows.Scan(&l.ID, &l.EditorID, &l.EditorName, &l.EditorType, &l.FileName, &l.Caption, &l.MediaURL, &l.MediaType, &l.CreatedAt, &l.ArchiveReason, &l.ArchivedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, nil
}

func (r *archiveLogRepository) RemoveByIDs(ctx context.Context, ids []int64) (int64, error) {
	query := `DELETE FROM archive_logs WHERE id = ANY($1)`
	result, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *archiveLogRepository) RemoveByEditor(ctx context.Context, editorID int64) error {
	query := `DELETE FROM archive_logs WHERE editor_id = $1`
	_, err := r.db.ExecContext(ctx, query, editorID)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
