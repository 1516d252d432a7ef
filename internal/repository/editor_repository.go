package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/models"
)

type EditorRepository interface {
	Create(ctx context.Context, tx *sql.Tx, editor *models.Editor) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Editor, error)
	GetBySecretLink(ctx context.Context, secretLink string) (*models.Editor, error)
	List(ctx context.Context) ([]*models.Editor, error)
	Remove(ctx context.Context, id int64) error
}

type editorRepository struct {
	db *sql.DB
}

func NewEditorRepository(db *sql.DB) EditorRepository {
	return &editorRepository{db: db}
}

func (r *editorRepository) Create(ctx context.Context, tx *sql.Tx, editor *models.Editor) (int64, error) {
	query := `
		INSERT INTO editors (name, type, description, secret_link)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, editor.Name, editor.Type, editor.Description, editor.SecretLink).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, editor.Name, editor.Type, editor.Description, editor.SecretLink).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *editorRepository) GetByID(ctx context.Context, id int64) (*models.Editor, error) {
	query := `SELECT id, name, type, description, secret_link, created_at FROM editors WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var editor models.Editor
	err := row.Scan(&editor.ID, &editor.Name, &editor.Type, &editor.Description, &editor.SecretLink, &editor.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &editor, nil
}

func (r *editorRepository) GetBySecretLink(ctx context.Context, secretLink string) (*models.Editor, error) {
	query := `SELECT id, name, type, description, secret_link, created_at FROM editors WHERE secret_link = $1`
	row := r.db.QueryRowContext(ctx, query, secretLink)

	var editor models.Editor
	err := row.Scan(&editor.ID, &editor.Name, &editor.Type, &editor.Description, &editor.SecretLink, &editor.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &editor, nil
}

func (r *editorRepository) List(ctx context.Context) ([]*models.Editor, error) {
	query := `SELECT id, name, type, description, secret_link, created_at FROM editors ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var editors []*models.Editor
	for rows.Next() {
		var editor models.Editor
		err := rows.Scan(&editor.ID, &editor.Name, &editor.Type, &editor.Description, &editor.SecretLink, &editor.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		editors = append(editors, &editor)
	}
	return editors, nil
}

func (r *editorRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM editors WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
