package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// DiscoveryFeedRepository reads RSS or Atom feeds watched for new data sources.
type DiscoveryFeedRepository interface {
	FetchItems(ctx context.Context, feedURL string) ([]dto.DiscoveredSource, error)
}

type discoveryFeedRepository struct {
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewDiscoveryFeedRepository creates a gofeed-backed discovery feed reader.
func NewDiscoveryFeedRepository(timeout time.Duration, log *logger.Logger) DiscoveryFeedRepository {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "insider-scanner/1.0"
	return &discoveryFeedRepository{log: log, parser: parser}
}

func (r *discoveryFeedRepository) FetchItems(ctx context.Context, feedURL string) ([]dto.DiscoveredSource, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to parse discovery feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, feedURL, err)
	}

	items := make([]dto.DiscoveredSource, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		src := dto.DiscoveredSource{Title: item.Title, Link: item.Link, Feed: feedURL}
		if item.PublishedParsed != nil {
			src.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			src.Published = *item.UpdatedParsed
		}
		items = append(items, src)
	}
	return items, nil
}
