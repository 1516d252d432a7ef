package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/transfer"
)

// FacebookService drives the Page publishing protocol for one scheduled
// item. It is a transport: platform-reported error envelopes come back inside
// the PublishResult, only request construction and transport failures return
// an error.
type FacebookService interface {
	SchedulePost(ctx context.Context, item transfer.MediaItem, publishAt time.Time) (*transfer.PublishResult, error)
}

type facebookService struct {
	cfg    config.Config
	client *http.Client
}

func NewFacebookService(cfg config.Config) FacebookService {
	return &facebookService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *facebookService) SchedulePost(ctx context.Context, item transfer.MediaItem, publishAt time.Time) (*transfer.PublishResult, error) {
	if s.cfg.PageID == "" || s.cfg.PageToken == "" {
		return nil, errors.New("page credentials are not configured")
	}

	if item.MediaType == models.MediaTypeVideo {
		return s.scheduleVideo(ctx, item, publishAt)
	}
	return s.scheduleImage(ctx, item, publishAt)
}

// scheduleVideo publishes a video in a single call. There is no caption-only
// fallback for videos.
func (s *facebookService) scheduleVideo(ctx context.Context, item transfer.MediaItem, publishAt time.Time) (*transfer.PublishResult, error) {
	if item.MediaURL == "" {
		return nil, errors.New("video item has no media url")
	}

	form := url.Values{}
	form.Set("description", item.Caption)
	form.Set("file_url", item.MediaURL)
	form.Set("published", "false")
	form.Set("scheduled_publish_time", strconv.FormatInt(publishAt.Unix(), 10))
	form.Set("access_token", s.cfg.PageToken)

	resp, err := s.postForm(ctx, fmt.Sprintf("/%s/videos", s.cfg.PageID), form)
	if err != nil {
		return nil, err
	}

	return &transfer.PublishResult{
		PostID: transfer.ExtractPostID(resp),
		Video:  resp,
	}, nil
}

// scheduleImage uses a two-step sequence: create an unpublished photo, then a
// scheduled feed post attaching it. Images without a media url degrade to a
// caption-only feed post.
func (s *facebookService) scheduleImage(ctx context.Context, item transfer.MediaItem, publishAt time.Time) (*transfer.PublishResult, error) {
	timestamp := strconv.FormatInt(publishAt.Unix(), 10)

	if item.MediaURL == "" {
		form := url.Values{}
		form.Set("message", item.Caption)
		form.Set("published", "false")
		form.Set("scheduled_publish_time", timestamp)
		form.Set("access_token", s.cfg.PageToken)

		resp, err := s.postForm(ctx, fmt.Sprintf("/%s/feed", s.cfg.PageID), form)
		if err != nil {
			return nil, err
		}
		return &transfer.PublishResult{
			PostID: transfer.ExtractPostID(resp),
			Feed:   resp,
		}, nil
	}

	photoForm := url.Values{}
	photoForm.Set("url", item.MediaURL)
	photoForm.Set("published", "false")
	photoForm.Set("access_token", s.cfg.PageToken)

	photoResp, err := s.postForm(ctx, fmt.Sprintf("/%s/photos", s.cfg.PageID), photoForm)
	if err != nil {
		return nil, err
	}

	photoID := transfer.ExtractPostID(photoResp)
	if photoID == "" {
		// No identifier means the photo create failed; hand the envelope back
		// without attempting the feed post.
		slog.Info("unpublished photo create returned no id", "file_name", item.FileName)
		return &transfer.PublishResult{Photo: photoResp}, nil
	}

	attached, err := json.Marshal(map[string]string{"media_fbid": photoID})
	if err != nil {
		return nil, fmt.Errorf("error marshalling attached media: %w", err)
	}

	feedForm := url.Values{}
	feedForm.Set("message", item.Caption)
	feedForm.Set("attached_media[0]", string(attached))
	feedForm.Set("published", "false")
	feedForm.Set("scheduled_publish_time", timestamp)
	feedForm.Set("access_token", s.cfg.PageToken)

	postResp, err := s.postForm(ctx, fmt.Sprintf("/%s/feed", s.cfg.PageID), feedForm)
	if err != nil {
		return nil, err
	}

	return &transfer.PublishResult{
		PostID: transfer.ExtractPostID(postResp),
		Photo:  photoResp,
		Post:   postResp,
	}, nil
}

// postForm sends a form-encoded POST to the Graph API and decodes the JSON
// envelope. A response that parses is returned as-is whatever its status
// code; an unparseable body is a transport failure.
func (s *facebookService) postForm(ctx context.Context, endpoint string, form url.Values) (map[string]interface{}, error) {
	reqURL := s.cfg.GraphBaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected response from graph api (status %d): %w", resp.StatusCode, err)
	}

	return envelope, nil
}
