package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/lib/pq"
)

const uploadColumns = `id, editor_id, file_name, caption, media_url, media_path, media_type, thumbnail_url, thumbnail_path, file_size, created_at`

type UploadRepository interface {
	Create(ctx context.Context, tx *sql.Tx, upload *models.Upload) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Upload, error)
	List(ctx context.Context) ([]*models.Upload, error)
	ListByEditor(ctx context.Context, editorID int64) ([]*models.Upload, error)
	ListByType(ctx context.Context, mediaType string) ([]*models.Upload, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Upload, error)
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Upload, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Upload, error)
	Remove(ctx context.Context, id int64) error
	RemoveByIDs(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error)
	RemoveByEditor(ctx context.Context, editorID int64) error
	RemoveOlderThan(ctx context.Context, tx *sql.Tx, cutoff time.Time) (int64, error)
	RemoveBetween(ctx context.Context, tx *sql.Tx, from, to time.Time) (int64, error)
}

type uploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, tx *sql.Tx, upload *models.Upload) (int64, error) {
	query := `
		INSERT INTO uploads (editor_id, file_name, caption, media_url, media_path, media_type, thumbnail_url, thumbnail_path, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{
		upload.EditorID, upload.FileName, upload.Caption, upload.MediaURL, upload.MediaPath,
		upload.MediaType, upload.ThumbnailURL, upload.ThumbnailPath, upload.FileSize,
	}

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *uploadRepository) GetByID(ctx context.Context, id int64) (*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	upload, err := scanUpload(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return upload, nil
}

func (r *uploadRepository) List(ctx context.Context) ([]*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads ORDER BY created_at DESC`
	return r.queryUploads(ctx, query)
}

func (r *uploadRepository) ListByEditor(ctx context.Context, editorID int64) ([]*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE editor_id = $1 ORDER BY created_at DESC`
	return r.queryUploads(ctx, query, editorID)
}

func (r *uploadRepository) ListByType(ctx context.Context, mediaType string) ([]*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE media_type = $1 ORDER BY created_at DESC`
	return r.queryUploads(ctx, query, mediaType)
}

func (r *uploadRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE id = ANY($1)`
	return r.queryUploads(ctx, query, pq.Array(ids))
}

func (r *uploadRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE created_at < $1`
	return r.queryUploads(ctx, query, cutoff)
}

func (r *uploadRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE created_at >= $1 AND created_at < $2`
	return r.queryUploads(ctx, query, from, to)
}

func (r *uploadRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM uploads WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *uploadRepository) RemoveByIDs(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error) {
	query := `DELETE FROM uploads WHERE id = ANY($1)`
	return r.execDelete(ctx, tx, query, pq.Array(ids))
}

func (r *uploadRepository) RemoveByEditor(ctx context.Context, editorID int64) error {
	query := `DELETE FROM uploads WHERE editor_id = $1`
	_, err := r.db.ExecContext(ctx, query, editorID)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *uploadRepository) RemoveOlderThan(ctx context.Context, tx *sql.Tx, cutoff time.Time) (int64, error) {
	query := `DELETE FROM uploads WHERE created_at < $1`
	return r.execDelete(ctx, tx, query, cutoff)
}

func (r *uploadRepository) RemoveBetween(ctx context.Context, tx *sql.Tx, from, to time.Time) (int64, error) {
	query := `DELETE FROM uploads WHERE created_at >= $1 AND created_at < $2`
	return r.execDelete(ctx, tx, query, from, to)
}

func (r *uploadRepository) queryUploads(ctx context.Context, query string, args ...interface{}) ([]*models.Upload, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func (r *uploadRepository) execDelete(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int64, error) {
	var result sql.Result
	var err error

	if tx != nil {
		result, err = tx.ExecContext(ctx, query, args...)
	} else {
		result, err = r.db.ExecContext(ctx, query, args...)
	}
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUpload(row rowScanner) (*models.Upload, error) {
	var upload models.Upload
	err := row.Scan(
		&upload.ID, &upload.EditorID, &upload.FileName, &upload.Caption, &upload.MediaURL,
		&upload.MediaPath, &upload.MediaType, &upload.ThumbnailURL, &upload.ThumbnailPath,
		&upload.FileSize, &upload.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}
