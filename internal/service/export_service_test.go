package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
)

func newTestExportService(ur *fakeUploadRepo) *exportService {
	return &exportService{
		ur: ur,
		now: func() time.Time {
			return time.Date(2025, 6, 11, 12, 0, 0, 0, time.Local)
		},
	}
}

func TestExportCSVAll(t *testing.T) {
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		{
			ID:           1,
			MediaType:    models.MediaTypeVideo,
			FileName:     "clip.mp4",
			Caption:      "a clip",
			MediaURL:     "https://cdn.example.com/clip.mp4",
			ThumbnailURL: "https://cdn.example.com/clip.jpg",
		},
		{
			ID:           2,
			MediaType:    models.MediaTypeImage,
			FileName:     "pic.jpg",
			Caption:      "a pic",
			MediaURL:     "https://cdn.example.com/pic.jpg",
			ThumbnailURL: "https://cdn.example.com/ignored.jpg",
		},
	}}
	s := newTestExportService(ur)

	fileName, data, err := s.ExportCSV(context.Background(), "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileName != "uploads-all-2025-06-11.csv" {
		t.Errorf("file name = %q", fileName)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header plus 2", len(rows))
	}

	wantHeader := []string{"Media Type", "File Name", "Description", "Media Link", "Thumbnail Link"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v", rows[0])
	}

	if rows[1][4] != "https://cdn.example.com/clip.jpg" {
		t.Errorf("video thumbnail = %q", rows[1][4])
	}
	// Thumbnails are a video-only column.
	if rows[2][4] != "" {
		t.Errorf("image thumbnail = %q, want empty", rows[2][4])
	}
}

func TestExportCSVByType(t *testing.T) {
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		{ID: 1, MediaType: models.MediaTypeVideo, FileName: "clip.mp4"},
		{ID: 2, MediaType: models.MediaTypeImage, FileName: "pic.jpg"},
	}}
	s := newTestExportService(ur)

	fileName, data, err := s.ExportCSV(context.Background(), "videos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileName != "uploads-videos-2025-06-11.csv" {
		t.Errorf("file name = %q", fileName)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want header plus 1", len(rows))
	}
	if rows[1][1] != "clip.mp4" {
		t.Errorf("exported file = %q", rows[1][1])
	}
}

func TestExportCSVEmptyTypeDefaultsToAll(t *testing.T) {
	s := newTestExportService(&fakeUploadRepo{})

	fileName, _, err := s.ExportCSV(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileName != "uploads-all-2025-06-11.csv" {
		t.Errorf("file name = %q", fileName)
	}
}

func TestExportCSVUnknownType(t *testing.T) {
	s := newTestExportService(&fakeUploadRepo{})

	if _, _, err := s.ExportCSV(context.Background(), "gifs"); err == nil {
		t.Fatal("expected error for an unknown export type")
	}
}
