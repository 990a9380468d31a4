package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"finedu/backend/internal/config"
	"finedu/backend/internal/logger"
	"finedu/backend/internal/model"
	"finedu/backend/internal/network"
	"finedu/backend/internal/repository"
)

const (
	keyNewsFeeds = "news.feeds"

	newsRetention    = 30 * 24 * time.Hour
	feedFetchTimeout = 30 * time.Second
)

// NewsService aggregates finance news feeds and extracts readable articles.
type NewsService interface {
	List(ctx context.Context, limit int) ([]model.NewsItem, error)
	Get(ctx context.Context, id int64) (model.NewsItem, error)
	// RefreshAll fetches every configured feed and upserts its items.
	// Per-feed failures are logged and skipped.
	RefreshAll(ctx context.Context) error
	// ReadArticle returns sanitized readable HTML for one item, fetching
	// and caching it on first access.
	ReadArticle(ctx context.Context, id int64) (string, error)
	FeedURLs(ctx context.Context) []string
}

type newsService struct {
	news          repository.NewsRepository
	settings      repository.SettingsRepository
	clientFactory *network.ClientFactory
	defaultFeeds  []string
	sanitizer     *bluemonday.Policy
}

func NewNewsService(news repository.NewsRepository, settings repository.SettingsRepository, clientFactory *network.ClientFactory, defaultFeeds []string) NewsService {
	// Keep structural elements so readability can find the article body.
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "nav", "aside", "main", "figure", "figcaption")
	p.AllowAttrs("id", "class", "lang", "dir").Globally()

	return &newsService{
		news:          news,
		settings:      settings,
		clientFactory: clientFactory,
		defaultFeeds:  defaultFeeds,
		sanitizer:     p,
	}
}

func (s *newsService) List(ctx context.Context, limit int) ([]model.NewsItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.news.List(ctx, limit)
}

func (s *newsService) Get(ctx context.Context, id int64) (model.NewsItem, error) {
	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.NewsItem{}, ErrNotFound
		}
		return model.NewsItem{}, err
	}
	return item, nil
}

// FeedURLs merges the configured default feeds with the stored override list.
func (s *newsService) FeedURLs(ctx context.Context) []string {
	urls := make([]string, 0, len(s.defaultFeeds))
	seen := make(map[string]bool)
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	for _, u := range s.defaultFeeds {
		add(u)
	}
	if setting, err := s.settings.Get(ctx, keyNewsFeeds); err == nil && setting != nil {
		for _, u := range strings.Split(setting.Value, ",") {
			add(u)
		}
	}
	return urls
}

func (s *newsService) RefreshAll(ctx context.Context) error {
	feeds := s.FeedURLs(ctx)
	if len(feeds) == 0 {
		logger.Debug("no news feeds configured",
			"module", "news", "action", "refresh", "resource", "feed", "result", "skipped")
		return nil
	}

	var failed int
	for _, feedURL := range feeds {
		if err := s.refreshFeed(ctx, feedURL); err != nil {
			failed++
			logger.Warn("feed refresh failed",
				"module", "news", "action", "refresh", "resource", "feed", "result", "error",
				"feed_url", feedURL, "error", err)
		}
	}

	if deleted, err := s.news.DeleteOlderThan(ctx, time.Now().Add(-newsRetention)); err != nil {
		logger.Warn("news cleanup failed",
			"module", "news", "action", "cleanup", "resource", "news", "result", "error",
			"error", err)
	} else if deleted > 0 {
		logger.Info("old news removed",
			"module", "news", "action", "cleanup", "resource", "news", "result", "ok",
			"deleted", deleted)
	}

	if failed == len(feeds) {
		return ErrFeedFetch
	}
	return nil
}

func (s *newsService) refreshFeed(ctx context.Context, feedURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return ErrFeedFetch
	}
	req.Header.Set("User-Agent", config.AppUserAgent)

	resp, err := s.clientFactory.NewHTTPClient(ctx, feedFetchTimeout).Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: HTTP %d", ErrFeedFetch, resp.StatusCode)
	}

	parser := gofeed.NewParser()
	parsed, err := parser.Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	source := strings.TrimSpace(parsed.Title)
	if source == "" {
		source = feedURL
	}

	var stored int
	for _, item := range parsed.Items {
		news, ok := itemToNews(source, item)
		if !ok {
			continue
		}
		if err := s.news.CreateOrUpdate(ctx, news); err != nil {
			return fmt.Errorf("store news item: %w", err)
		}
		stored++
	}

	logger.Info("feed refreshed",
		"module", "news", "action", "refresh", "resource", "feed", "result", "ok",
		"feed_url", feedURL, "items", stored)
	return nil
}

func itemToNews(source string, item *gofeed.Item) (model.NewsItem, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return model.NewsItem{}, false
	}

	news := model.NewsItem{
		Source: source,
		Title:  title,
		URL:    link,
	}

	summary := strings.TrimSpace(item.Description)
	if summary == "" {
		summary = strings.TrimSpace(item.Content)
	}
	if summary != "" {
		news.Summary = &summary
	}

	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		news.PublishedAt = &t
	} else if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		news.PublishedAt = &t
	}

	return news, true
}

func (s *newsService) ReadArticle(ctx context.Context, id int64) (string, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if item.ReadableContent != nil && *item.ReadableContent != "" {
		return *item.ReadableContent, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL, nil)
	if err != nil {
		return "", ErrFeedFetch
	}
	req.Header.Set("User-Agent", config.AppUserAgent)

	resp, err := s.clientFactory.NewHTTPClient(ctx, feedFetchTimeout).Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body failed: %w", err)
	}

	// Strip scripts and trackers before handing the page to readability.
	sanitized := s.sanitizer.Sanitize(string(body))

	parsedURL, err := url.Parse(item.URL)
	if err != nil {
		return "", fmt.Errorf("parse URL failed: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(sanitized), parsedURL)
	if err != nil {
		return "", fmt.Errorf("parse content failed: %w", err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}

	content := buf.String()
	if content == "" {
		return "", ErrInvalid
	}

	if err := s.news.UpdateReadableContent(ctx, item.ID, content); err != nil {
		return "", err
	}
	return content, nil
}
