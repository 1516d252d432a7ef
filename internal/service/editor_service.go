package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/repository"
	"github.com/ankithstudio/mediadesk/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type EditorService interface {
	Create(ctx context.Context, ec *transfer.EditorCreation) (*models.Editor, error)
	List(ctx context.Context) ([]*models.Editor, error)
	GetBySecret(ctx context.Context, secretLink string) (*models.Editor, error)
	Remove(ctx context.Context, editorID int64) error
}

type editorService struct {
	er repository.EditorRepository
	ur repository.UploadRepository
	ar repository.ArchiveLogRepository
	r2 R2Service
}

func NewEditorService(
	er repository.EditorRepository,
	ur repository.UploadRepository,
	ar repository.ArchiveLogRepository,
	r2 R2Service) EditorService {
	return &editorService{
		er: er,
		ur: ur,
		ar: ar,
		r2: r2,
	}
}

func (s *editorService) Create(ctx context.Context, ec *transfer.EditorCreation) (*models.Editor, error) {
	var err error

	if ec == nil || strings.TrimSpace(ec.Name) == "" {
		err = errors.New("editor name is required")
		slog.Info(err.Error())
		return nil, err
	}

	if ec.Type != models.EditorTypeVideo && ec.Type != models.EditorTypeGraphic {
		err = errors.New("invalid editor type, must be 'video' or 'graphic'")
		slog.Info(err.Error())
		return nil, err
	}

	if strings.TrimSpace(ec.Description) == "" {
		err = errors.New("description is required")
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	editor := &models.Editor{
		Name:        strings.TrimSpace(ec.Name),
		Type:        ec.Type,
		Description: strings.TrimSpace(ec.Description),
		SecretLink:  fmt.Sprintf("%s-%s", ec.Type, id),
	}

	editorID, err := s.er.Create(ctx, nil, editor)
	if err != nil {
		return nil, fmt.Errorf("error creating editor: %w", err)
	}

	created, err := s.er.GetByID(ctx, editorID)
	if err != nil {
		return nil, fmt.Errorf("error fetching created editor: %w", err)
	}

	return created, nil
}

func (s *editorService) List(ctx context.Context) ([]*models.Editor, error) {
	editors, err := s.er.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing editors: %w", err)
	}
	return editors, nil
}

func (s *editorService) GetBySecret(ctx context.Context, secretLink string) (*models.Editor, error) {
	if secretLink == "" {
		err := errors.New("secret link is empty")
		slog.Info(err.Error())
		return nil, err
	}

	editor, err := s.er.GetBySecretLink(ctx, secretLink)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, errors.New("editor not found")
	}
	return editor, nil
}

// Remove deletes the editor and everything hanging off it: stored media
// objects (best-effort), upload records and archive logs.
func (s *editorService) Remove(ctx context.Context, editorID int64) error {
	var err error

	if editorID == 0 {
		err = errors.New("editor id is not valid")
		slog.Info(err.Error())
		return err
	}

	editor, err := s.er.GetByID(ctx, editorID)
	if err != nil {
		return err
	}
	if editor == nil {
		err = errors.New("editor doesn't exist")
		slog.Info(err.Error())
		return err
	}

	uploads, err := s.ur.ListByEditor(ctx, editorID)
	if err != nil {
		return fmt.Errorf("error listing uploads for editor %d: %w", editorID, err)
	}

	for _, upload := range uploads {
		if upload.MediaPath != "" {
			if err := s.r2.DeleteFromR2(ctx, upload.MediaPath); err != nil {
				slog.Info("could not delete stored media, continuing", "path", upload.MediaPath)
			}
		}
		if upload.ThumbnailPath != "" {
			if err := s.r2.DeleteFromR2(ctx, upload.ThumbnailPath); err != nil {
				slog.Info("could not delete stored thumbnail, continuing", "path", upload.ThumbnailPath)
			}
		}
	}

	if err := s.ur.RemoveByEditor(ctx, editorID); err != nil {
		return fmt.Errorf("error removing uploads for editor %d: %w", editorID, err)
	}

	if err := s.ar.RemoveByEditor(ctx, editorID); err != nil {
		return fmt.Errorf("error removing logs for editor %d: %w", editorID, err)
	}

	if err := s.er.Remove(ctx, editorID); err != nil {
		return fmt.Errorf("error removing editor %d: %w", editorID, err)
	}

	return nil
}
