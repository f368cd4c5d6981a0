package driver

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"feed-curator/domain"
	"feed-curator/internal/config"
)

// FetchFeed pulls one source feed and converts its entries to raw items.
func FetchFeed(ctx context.Context, feedURL string, cfg config.FetchConfig, logger *slog.Logger) ([]domain.RawItem, error) {
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL %s: %w", feedURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme: %s (must be http or https)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("missing host in URL: %s", feedURL)
	}

	fp := gofeed.NewParser()
	fp.Client = createHTTPClient(cfg)
	fp.UserAgent = cfg.UserAgent

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse feed", "url", feedURL, "error", err)
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	items := convertFeedItems(feedURL, feed)

	logger.InfoContext(ctx, "feed collected",
		"url", feedURL,
		"feed_title", feed.Title,
		"items", len(items))

	return items, nil
}

func convertFeedItems(source string, feed *gofeed.Feed) []domain.RawItem {
	items := make([]domain.RawItem, 0, len(feed.Items))

	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}

		body := entry.Content
		if body == "" {
			body = entry.Description
		}

		sourceID := entry.GUID
		if sourceID == "" {
			sourceID = entry.Link
		}

		var author string
		if entry.Author != nil {
			author = entry.Author.Name
		} else if len(entry.Authors) > 0 && entry.Authors[0] != nil {
			author = entry.Authors[0].Name
		}

		publishedAt := entry.PublishedParsed
		if publishedAt == nil {
			publishedAt = entry.UpdatedParsed
		}

		items = append(items, domain.RawItem{
			Source:      source,
			SourceID:    sourceID,
			Title:       entry.Title,
			Body:        body,
			URL:         entry.Link,
			Author:      author,
			PublishedAt: publishedAt,
		})
	}

	return items
}

// createHTTPClient builds the client used for source feed fetching.
func createHTTPClient(cfg config.FetchConfig) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
			MinVersion:         tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 30 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
