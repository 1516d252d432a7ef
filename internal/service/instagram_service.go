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

// InstagramService cross-posts a scheduled item onto the Instagram account
// linked to the Facebook page. Cross-posting is strictly best-effort: callers
// record its errors next to the primary result and never let them abort a
// publish.
type InstagramService interface {
	CrossPost(ctx context.Context, item transfer.MediaItem, publishAt time.Time) (map[string]interface{}, error)
}

type instagramService struct {
	cfg    config.Config
	client *http.Client

	// accountID is resolved lazily and kept for the process lifetime. If the
	// linked account changes, the process must restart to pick it up. The
	// batch loop is sequential, so the single assignment needs no lock.
	accountID string
}

func NewInstagramService(cfg config.Config) InstagramService {
	return &instagramService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *instagramService) CrossPost(ctx context.Context, item transfer.MediaItem, publishAt time.Time) (map[string]interface{}, error) {
	if s.cfg.SystemToken == "" {
		return nil, errors.New("system token is not configured")
	}
	if item.MediaURL == "" {
		return nil, errors.New("item has no media url to cross-post")
	}

	accountID, err := s.resolveAccountID(ctx)
	if err != nil {
		return nil, err
	}

	// Instagram uses its own field names: video_url/image_url instead of
	// file_url, caption instead of description/message, publish_at instead of
	// scheduled_publish_time.
	form := url.Values{}
	if item.MediaType == models.MediaTypeVideo {
		form.Set("video_url", item.MediaURL)
		form.Set("media_type", "REELS")
	} else {
		form.Set("image_url", item.MediaURL)
	}
	form.Set("caption", item.Caption)
	form.Set("publish_at", strconv.FormatInt(publishAt.Unix(), 10))
	form.Set("access_token", s.cfg.SystemToken)

	resp, err := s.postForm(ctx, fmt.Sprintf("/%s/media", accountID), form)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// resolveAccountID returns the Instagram business account linked to the
// page, looking it up at most once per process. An operator-supplied account
// id skips the lookup entirely.
func (s *instagramService) resolveAccountID(ctx context.Context) (string, error) {
	if s.accountID != "" {
		return s.accountID, nil
	}

	if s.cfg.InstagramAccountID != "" {
		s.accountID = s.cfg.InstagramAccountID
		return s.accountID, nil
	}

	reqURL := fmt.Sprintf(
		"%s/%s?fields=instagram_business_account&access_token=%s",
		s.cfg.GraphBaseURL,
		s.cfg.PageID,
		url.QueryEscape(s.cfg.SystemToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		InstagramBusinessAccount struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to decode account lookup response: %w", err)
	}

	if result.InstagramBusinessAccount.ID == "" {
		return "", fmt.Errorf("no instagram business account linked to page %s and INSTAGRAM_ACCOUNT_ID is not set", s.cfg.PageID)
	}

	s.accountID = result.InstagramBusinessAccount.ID
	return s.accountID, nil
}

func (s *instagramService) postForm(ctx context.Context, endpoint string, form url.Values) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GraphBaseURL+endpoint, strings.NewReader(form.Encode()))
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
