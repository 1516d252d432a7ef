package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/repository"
)

type ExportService interface {
	// ExportCSV renders pending uploads as CSV. exportType is "all",
	// "videos" or "images". Returns the suggested file name and the bytes.
	ExportCSV(ctx context.Context, exportType string) (string, []byte, error)
}

type exportService struct {
	ur  repository.UploadRepository
	now func() time.Time
}

func NewExportService(ur repository.UploadRepository) ExportService {
	return &exportService{
		ur:  ur,
		now: time.Now,
	}
}

func (s *exportService) ExportCSV(ctx context.Context, exportType string) (string, []byte, error) {
	var uploads []*models.Upload
	var err error

	switch exportType {
	case "videos":
		uploads, err = s.ur.ListByType(ctx, models.MediaTypeVideo)
	case "images":
		uploads, err = s.ur.ListByType(ctx, models.MediaTypeImage)
	case "", "all":
		exportType = "all"
		uploads, err = s.ur.List(ctx)
	default:
		return "", nil, fmt.Errorf("unknown export type %q", exportType)
	}
	if err != nil {
		return "", nil, fmt.Errorf("error listing uploads for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Media Type", "File Name", "Description", "Media Link", "Thumbnail Link"}); err != nil {
		return "", nil, err
	}

	for _, upload := range uploads {
		// Thumbnails only apply to videos.
		thumbnail := ""
		if upload.MediaType == models.MediaTypeVideo {
			thumbnail = upload.ThumbnailURL
		}

		row := []string{upload.MediaType, upload.FileName, upload.Caption, upload.MediaURL, thumbnail}
		if err := w.Write(row); err != nil {
			return "", nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	fileName := fmt.Sprintf("uploads-%s-%s.csv", exportType, s.now().Format("2006-01-02"))
	return fileName, buf.Bytes(), nil
}
