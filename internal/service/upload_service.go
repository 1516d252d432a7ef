package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/repository"
	"github.com/ankithstudio/mediadesk/internal/transfer"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxDirectUploadSize = 25 * 1024 * 1024

type UploadService interface {
	CreateMetadata(ctx context.Context, editorID int64, uc *transfer.UploadCreation) (*models.Upload, error)
	UploadFile(ctx context.Context, editorID int64, fileName, caption string, file []byte) (*models.Upload, error)
	SignUpload(ctx context.Context, req *transfer.SignRequest) (*transfer.SignedUpload, error)
	List(ctx context.Context, editorID int64) ([]*models.Upload, error)
	Remove(ctx context.Context, uploadID int64) error
}

type uploadService struct {
	cfg config.Config
	ur  repository.UploadRepository
	r2  R2Service
}

func NewUploadService(cfg config.Config, ur repository.UploadRepository, r2 R2Service) UploadService {
	return &uploadService{
		cfg: cfg,
		ur:  ur,
		r2:  r2,
	}
}

// CreateMetadata records an upload whose bytes already live elsewhere (e.g.
// a browser upload against a presigned URL).
func (s *uploadService) CreateMetadata(ctx context.Context, editorID int64, uc *transfer.UploadCreation) (*models.Upload, error) {
	var err error

	if uc == nil {
		err = errors.New("upload data is nil")
		slog.Error(err.Error())
		return nil, err
	}
	if editorID == 0 {
		err = errors.New("editor id is required")
		slog.Info(err.Error())
		return nil, err
	}
	if strings.TrimSpace(uc.Caption) == "" {
		err = errors.New("description is required")
		slog.Info(err.Error())
		return nil, err
	}
	if uc.MediaType != models.MediaTypeVideo && uc.MediaType != models.MediaTypeImage {
		err = errors.New("invalid media type")
		slog.Info(err.Error())
		return nil, err
	}
	if uc.MediaURL == "" {
		err = errors.New("missing media url")
		slog.Info(err.Error())
		return nil, err
	}
	if uc.FileName == "" {
		err = errors.New("missing original file name")
		slog.Info(err.Error())
		return nil, err
	}

	upload := &models.Upload{
		EditorID:      editorID,
		FileName:      uc.FileName,
		Caption:       strings.TrimSpace(uc.Caption),
		MediaURL:      uc.MediaURL,
		MediaPath:     uc.MediaPath,
		MediaType:     uc.MediaType,
		ThumbnailURL:  uc.ThumbnailURL,
		ThumbnailPath: uc.ThumbnailPath,
		FileSize:      uc.FileSize,
	}

	uploadID, err := s.ur.Create(ctx, nil, upload)
	if err != nil {
		return nil, fmt.Errorf("error saving upload metadata: %w", err)
	}

	created, err := s.ur.GetByID(ctx, uploadID)
	if err != nil {
		return nil, fmt.Errorf("error fetching created upload: %w", err)
	}

	return created, nil
}

// UploadFile stores a small file directly and records it. Larger files go
// through SignUpload + CreateMetadata.
func (s *uploadService) UploadFile(ctx context.Context, editorID int64, fileName, caption string, file []byte) (*models.Upload, error) {
	if len(file) == 0 {
		return nil, errors.New("no file content provided")
	}
	if len(file) > maxDirectUploadSize {
		return nil, fmt.Errorf("file too large for direct upload (%d bytes)", len(file))
	}

	fileType, err := filetype.Match(file)
	if err != nil || fileType == types.Unknown {
		return nil, errors.New("unsupported file type")
	}

	var mediaType string
	switch fileType.Extension {
	case "mp4", "mov":
		mediaType = models.MediaTypeVideo
	case "jpg", "jpeg", "png":
		mediaType = models.MediaTypeImage
	default:
		return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	if err := s.r2.UploadToR2(ctx, key, file, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	return s.CreateMetadata(ctx, editorID, &transfer.UploadCreation{
		Caption:   caption,
		MediaType: mediaType,
		FileName:  fileName,
		MediaURL:  s.r2.PublicURL(key),
		MediaPath: key,
		FileSize:  int64(len(file)),
	})
}

func (s *uploadService) SignUpload(ctx context.Context, req *transfer.SignRequest) (*transfer.SignedUpload, error) {
	if req == nil || req.ContentType == "" {
		return nil, errors.New("content type is required")
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	uploadURL, err := s.r2.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("error signing upload: %w", err)
	}

	return &transfer.SignedUpload{
		ObjectKey: key,
		UploadURL: uploadURL,
		PublicURL: s.r2.PublicURL(key),
	}, nil
}

func (s *uploadService) List(ctx context.Context, editorID int64) ([]*models.Upload, error) {
	var uploads []*models.Upload
	var err error

	if editorID != 0 {
		uploads, err = s.ur.ListByEditor(ctx, editorID)
	} else {
		uploads, err = s.ur.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}
	return uploads, nil
}

func (s *uploadService) Remove(ctx context.Context, uploadID int64) error {
	var err error

	if uploadID == 0 {
		err = errors.New("upload id is not valid")
		slog.Info(err.Error())
		return err
	}

	upload, err := s.ur.GetByID(ctx, uploadID)
	if err != nil {
		return err
	}
	if upload == nil {
		err = errors.New("upload doesn't exist")
		slog.Info(err.Error())
		return err
	}

	if upload.MediaPath != "" {
		if err := s.r2.DeleteFromR2(ctx, upload.MediaPath); err != nil {
			slog.Info("could not delete stored media, continuing", "path", upload.MediaPath)
		}
	}

	if err := s.ur.Remove(ctx, uploadID); err != nil {
		return fmt.Errorf("error removing upload: %w", err)
	}

	return nil
}
