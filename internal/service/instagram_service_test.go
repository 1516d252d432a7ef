package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/internal/models"
	"github.com/ankithstudio/mediadesk/internal/transfer"
)

func testCrossPostConfig(baseURL string) config.Config {
	return config.Config{
		PageID:       "page1",
		PageToken:    "token1",
		SystemToken:  "systoken",
		GraphBaseURL: baseURL,
	}
}

func TestCrossPostWithoutSystemToken(t *testing.T) {
	s := NewInstagramService(config.Config{GraphBaseURL: "http://unused"})

	item := transfer.MediaItem{MediaType: models.MediaTypeImage, MediaURL: "https://cdn.example.com/pic.jpg"}
	if _, err := s.CrossPost(context.Background(), item, time.Now()); err == nil {
		t.Fatal("expected error when the system token is missing")
	}
}

func TestCrossPostWithoutMediaURL(t *testing.T) {
	s := NewInstagramService(testCrossPostConfig("http://unused"))

	item := transfer.MediaItem{MediaType: models.MediaTypeImage, Caption: "no media"}
	if _, err := s.CrossPost(context.Background(), item, time.Now()); err == nil {
		t.Fatal("expected error when the item has no media url")
	}
}

func TestCrossPostLooksUpAccountOnce(t *testing.T) {
	var lookups, posts atomic.Int32
	var mediaPath string
	var mediaForm url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			lookups.Add(1)
			if got := r.URL.Query().Get("fields"); got != "instagram_business_account" {
				t.Errorf("lookup fields = %q", got)
			}
			if got := r.URL.Query().Get("access_token"); got != "systoken" {
				t.Errorf("lookup access_token = %q", got)
			}
			w.Write([]byte(`{"instagram_business_account":{"id":"ig9"}}`))
			return
		}
		posts.Add(1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		mediaPath = r.URL.Path
		mediaForm = r.PostForm
		w.Write([]byte(`{"id":"creation1"}`))
	}))
	defer server.Close()

	s := NewInstagramService(testCrossPostConfig(server.URL))
	publishAt := time.Date(2025, 6, 11, 0, 30, 0, 0, time.UTC)

	item := transfer.MediaItem{
		MediaType: models.MediaTypeImage,
		MediaURL:  "https://cdn.example.com/pic.jpg",
		Caption:   "crossed over",
	}

	for i := 0; i < 2; i++ {
		resp, err := s.CrossPost(context.Background(), item, publishAt)
		if err != nil {
			t.Fatalf("cross-post %d: %v", i, err)
		}
		if resp["id"] != "creation1" {
			t.Errorf("cross-post %d response = %v", i, resp)
		}
	}

	if got := lookups.Load(); got != 1 {
		t.Errorf("account lookups = %d, want 1", got)
	}
	if got := posts.Load(); got != 2 {
		t.Errorf("media posts = %d, want 2", got)
	}

	if mediaPath != "/ig9/media" {
		t.Errorf("media path = %q, want /ig9/media", mediaPath)
	}
	if got := mediaForm.Get("image_url"); got != "https://cdn.example.com/pic.jpg" {
		t.Errorf("image_url = %q", got)
	}
	if got := mediaForm.Get("caption"); got != "crossed over" {
		t.Errorf("caption = %q", got)
	}
	if got := mediaForm.Get("publish_at"); got != strconv.FormatInt(publishAt.Unix(), 10) {
		t.Errorf("publish_at = %q", got)
	}
	if got := mediaForm.Get("access_token"); got != "systoken" {
		t.Errorf("access_token = %q, want the system token", got)
	}
}

func TestCrossPostVideoFields(t *testing.T) {
	var mediaForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"instagram_business_account":{"id":"ig9"}}`))
			return
		}
		r.ParseForm()
		mediaForm = r.PostForm
		w.Write([]byte(`{"id":"creation2"}`))
	}))
	defer server.Close()

	s := NewInstagramService(testCrossPostConfig(server.URL))

	item := transfer.MediaItem{
		MediaType: models.MediaTypeVideo,
		MediaURL:  "https://cdn.example.com/clip.mp4",
		Caption:   "reel",
	}

	if _, err := s.CrossPost(context.Background(), item, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mediaForm.Get("video_url"); got != "https://cdn.example.com/clip.mp4" {
		t.Errorf("video_url = %q", got)
	}
	if got := mediaForm.Get("media_type"); got != "REELS" {
		t.Errorf("media_type = %q, want REELS", got)
	}
	if mediaForm.Has("image_url") {
		t.Error("video cross-post must not set image_url")
	}
}

func TestCrossPostAccountOverrideSkipsLookup(t *testing.T) {
	var mediaPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			t.Error("account lookup must be skipped when an account id is configured")
			http.Error(w, "unexpected", http.StatusTeapot)
			return
		}
		mediaPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"creation3"}`))
	}))
	defer server.Close()

	cfg := testCrossPostConfig(server.URL)
	cfg.InstagramAccountID = "ig42"
	s := NewInstagramService(cfg)

	item := transfer.MediaItem{MediaType: models.MediaTypeImage, MediaURL: "https://cdn.example.com/pic.jpg"}
	if _, err := s.CrossPost(context.Background(), item, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mediaPath != "/ig42/media" {
		t.Errorf("media path = %q, want /ig42/media", mediaPath)
	}
}

func TestCrossPostNoLinkedAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"page1"}`))
	}))
	defer server.Close()

	s := NewInstagramService(testCrossPostConfig(server.URL))

	item := transfer.MediaItem{MediaType: models.MediaTypeImage, MediaURL: "https://cdn.example.com/pic.jpg"}
	_, err := s.CrossPost(context.Background(), item, time.Now())
	if err == nil {
		t.Fatal("expected error when no account is linked")
	}
	if !strings.Contains(err.Error(), "no instagram business account") {
		t.Errorf("unexpected error: %v", err)
	}
}
