package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
)

type fakeUploadRepo struct {
	uploads []*models.Upload
	nextID  int64
}

func (r *fakeUploadRepo) Create(ctx context.Context, tx *sql.Tx, upload *models.Upload) (int64, error) {
	r.nextID++
	upload.ID = r.nextID
	r.uploads = append(r.uploads, upload)
	return upload.ID, nil
}

func (r *fakeUploadRepo) GetByID(ctx context.Context, id int64) (*models.Upload, error) {
	for _, u := range r.uploads {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUploadRepo) List(ctx context.Context) ([]*models.Upload, error) {
	return append([]*models.Upload(nil), r.uploads...), nil
}

func (r *fakeUploadRepo) ListByEditor(ctx context.Context, editorID int64) ([]*models.Upload, error) {
	var out []*models.Upload
	for _, u := range r.uploads {
		if u.EditorID == editorID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) ListByType(ctx context.Context, mediaType string) ([]*models.Upload, error) {
	var out []*models.Upload
	for _, u := range r.uploads {
		if u.MediaType == mediaType {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) ListByIDs(ctx context.Context, ids []int64) ([]*models.Upload, error) {
	keep := make(map[int64]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var out []*models.Upload
	for _, u := range r.uploads {
		if keep[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) ListOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Upload, error) {
	var out []*models.Upload
	for _, u := range r.uploads {
		if u.CreatedAt.Before(cutoff) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Upload, error) {
	var out []*models.Upload
	for _, u := range r.uploads {
		if !u.CreatedAt.Before(from) && u.CreatedAt.Before(to) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) Remove(ctx context.Context, id int64) error {
	r.remove(func(u *models.Upload) bool { return u.ID == id })
	return nil
}

func (r *fakeUploadRepo) RemoveByIDs(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error) {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	return r.remove(func(u *models.Upload) bool { return drop[u.ID] }), nil
}

func (r *fakeUploadRepo) RemoveByEditor(ctx context.Context, editorID int64) error {
	r.remove(func(u *models.Upload) bool { return u.EditorID == editorID })
	return nil
}

func (r *fakeUploadRepo) RemoveOlderThan(ctx context.Context, tx *sql.Tx, cutoff time.Time) (int64, error) {
	return r.remove(func(u *models.Upload) bool { return u.CreatedAt.Before(cutoff) }), nil
}

func (r *fakeUploadRepo) RemoveBetween(ctx context.Context, tx *sql.Tx, from, to time.Time) (int64, error) {
	return r.remove(func(u *models.Upload) bool {
		return !u.CreatedAt.Before(from) && u.CreatedAt.Before(to)
	}), nil
}

func (r *fakeUploadRepo) remove(match func(*models.Upload) bool) int64 {
	var kept []*models.Upload
	var removed int64
	for _, u := range r.uploads {
		if match(u) {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	r.uploads = kept
	return removed
}

type fakeArchiveLogRepo struct {
	logs   []*models.ArchiveLog
	nextID int64
}

func (r *fakeArchiveLogRepo) CreateMany(ctx context.Context, tx *sql.Tx, logs []*models.ArchiveLog) error {
	for _, l := range logs {
		r.nextID++
		l.ID = r.nextID
		r.logs = append(r.logs, l)
	}
	return nil
}

func (r *fakeArchiveLogRepo) List(ctx context.Context) ([]*models.ArchiveLog, error) {
	return append([]*models.ArchiveLog(nil), r.logs...), nil
}

func (r *fakeArchiveLogRepo) RemoveByIDs(ctx context.Context, ids []int64) (int64, error) {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []*models.ArchiveLog
	var removed int64
	for _, l := range r.logs {
		if drop[l.ID] {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.logs = kept
	return removed, nil
}

func (r *fakeArchiveLogRepo) RemoveByEditor(ctx context.Context, editorID int64) error {
	var kept []*models.ArchiveLog
	for _, l := range r.logs {
		if l.EditorID != editorID {
			kept = append(kept, l)
		}
	}
	r.logs = kept
	return nil
}

type fakeDailyStatRepo struct {
	stats map[string]*models.DailyStat
}

func (r *fakeDailyStatRepo) IncrementCounts(ctx context.Context, tx *sql.Tx, stat *models.DailyStat) error {
	if r.stats == nil {
		r.stats = make(map[string]*models.DailyStat)
	}
	existing, ok := r.stats[stat.Date]
	if !ok {
		copied := *stat
		r.stats[stat.Date] = &copied
		return nil
	}
	existing.Reels += stat.Reels
	existing.Posts += stat.Posts
	return nil
}

func (r *fakeDailyStatRepo) ListBetween(ctx context.Context, from, to string) ([]*models.DailyStat, error) {
	var out []*models.DailyStat
	for date, stat := range r.stats {
		if date >= from && date <= to {
			out = append(out, stat)
		}
	}
	return out, nil
}

var archiveTestNow = time.Date(2025, 6, 11, 12, 0, 0, 0, time.Local)

func newTestArchiveService(ur *fakeUploadRepo, ar *fakeArchiveLogRepo, ds *fakeDailyStatRepo) *archiveService {
	return &archiveService{
		ur:  ur,
		ar:  ar,
		ds:  ds,
		now: func() time.Time { return archiveTestNow },
	}
}

func testUpload(id int64, mediaType string, createdAt time.Time) *models.Upload {
	return &models.Upload{
		ID:        id,
		EditorID:  1,
		FileName:  "file",
		MediaType: mediaType,
		CreatedAt: createdAt,
	}
}

func TestArchiveUploadsByID(t *testing.T) {
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		testUpload(1, models.MediaTypeVideo, archiveTestNow),
		testUpload(2, models.MediaTypeImage, archiveTestNow),
	}}
	ar := &fakeArchiveLogRepo{}
	ds := &fakeDailyStatRepo{}
	s := newTestArchiveService(ur, ar, ds)

	count, err := s.ArchiveUploads(context.Background(), []string{"1"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("archived count = %d, want 1", count)
	}

	if len(ar.logs) != 1 {
		t.Fatalf("log count = %d, want 1", len(ar.logs))
	}
	if ar.logs[0].ArchiveReason != models.ArchiveReasonManual {
		t.Errorf("reason = %q, want %q", ar.logs[0].ArchiveReason, models.ArchiveReasonManual)
	}

	if len(ur.uploads) != 1 || ur.uploads[0].ID != 2 {
		t.Errorf("upload 1 should be gone, remaining: %v", ur.uploads)
	}

	key := archiveTestNow.Format("2006-01-02")
	stat := ds.stats[key]
	if stat == nil || stat.Reels != 1 || stat.Posts != 0 {
		t.Errorf("daily stat for %s = %+v, want one reel", key, stat)
	}
}

func TestArchiveUploadsAll(t *testing.T) {
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		testUpload(1, models.MediaTypeVideo, archiveTestNow),
		testUpload(2, models.MediaTypeImage, archiveTestNow),
	}}
	s := newTestArchiveService(ur, &fakeArchiveLogRepo{}, &fakeDailyStatRepo{})

	count, err := s.ArchiveUploads(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("archived count = %d, want 2", count)
	}
	if len(ur.uploads) != 0 {
		t.Errorf("all uploads should be gone, remaining: %v", ur.uploads)
	}
}

func TestArchiveUploadsSkipsBadIDs(t *testing.T) {
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		testUpload(1, models.MediaTypeVideo, archiveTestNow),
		testUpload(2, models.MediaTypeImage, archiveTestNow),
	}}
	s := newTestArchiveService(ur, &fakeArchiveLogRepo{}, &fakeDailyStatRepo{})

	count, err := s.ArchiveUploads(context.Background(), []string{"not-a-number", "2"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("archived count = %d, want 1", count)
	}
	if len(ur.uploads) != 1 || ur.uploads[0].ID != 1 {
		t.Errorf("only upload 2 should be gone, remaining: %v", ur.uploads)
	}
}

func TestArchiveUploadsNothingPending(t *testing.T) {
	ar := &fakeArchiveLogRepo{}
	s := newTestArchiveService(&fakeUploadRepo{}, ar, &fakeDailyStatRepo{})

	count, err := s.ArchiveUploads(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 || len(ar.logs) != 0 {
		t.Errorf("nothing should be archived, got count %d, logs %d", count, len(ar.logs))
	}
}

func TestPurgeOld(t *testing.T) {
	old := archiveTestNow.Add(-8 * 24 * time.Hour)
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		testUpload(1, models.MediaTypeVideo, old),
		testUpload(2, models.MediaTypeImage, archiveTestNow.Add(-time.Hour)),
	}}
	ar := &fakeArchiveLogRepo{}
	s := newTestArchiveService(ur, ar, &fakeDailyStatRepo{})

	count, err := s.PurgeOld(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("purged count = %d, want 1", count)
	}
	if len(ur.uploads) != 1 || ur.uploads[0].ID != 2 {
		t.Errorf("recent upload should survive the purge, remaining: %v", ur.uploads)
	}
	if len(ar.logs) != 1 || ar.logs[0].ArchiveReason != models.ArchiveReasonPurgeOld {
		t.Errorf("unexpected logs: %v", ar.logs)
	}
}

func TestResetDaily(t *testing.T) {
	yesterday := archiveTestNow.AddDate(0, 0, -1)
	ur := &fakeUploadRepo{uploads: []*models.Upload{
		testUpload(1, models.MediaTypeImage, archiveTestNow),
		testUpload(2, models.MediaTypeVideo, yesterday),
	}}
	ar := &fakeArchiveLogRepo{}
	s := newTestArchiveService(ur, ar, &fakeDailyStatRepo{})

	count, err := s.ResetDaily(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("reset count = %d, want 1", count)
	}
	if len(ur.uploads) != 1 || ur.uploads[0].ID != 2 {
		t.Errorf("yesterday's upload should survive, remaining: %v", ur.uploads)
	}
	if len(ar.logs) != 1 || ar.logs[0].ArchiveReason != models.ArchiveReasonDailyReset {
		t.Errorf("unexpected logs: %v", ar.logs)
	}
}

func TestRemoveLogs(t *testing.T) {
	ar := &fakeArchiveLogRepo{logs: []*models.ArchiveLog{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	s := newTestArchiveService(&fakeUploadRepo{}, ar, &fakeDailyStatRepo{})

	count, err := s.RemoveLogs(context.Background(), []string{"1", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted count = %d, want 2", count)
	}
	if len(ar.logs) != 1 || ar.logs[0].ID != 2 {
		t.Errorf("unexpected remaining logs: %v", ar.logs)
	}
}

func TestRemoveLogsNoValidIDs(t *testing.T) {
	s := newTestArchiveService(&fakeUploadRepo{}, &fakeArchiveLogRepo{}, &fakeDailyStatRepo{})

	if _, err := s.RemoveLogs(context.Background(), []string{"abc"}); err == nil {
		t.Fatal("expected error for ids that cannot be parsed")
	}
}
