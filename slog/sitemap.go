package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/postcraft"
)

// Ensure LoggingSitemapService implements postcraft.SitemapService.
var _ postcraft.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   postcraft.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next postcraft.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the blog URL, the
// number of posts found and the newest one.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *postcraft.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		newest := ""
		if len(urls) > 0 {
			newest = urls[0]
		}
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"filtered", filter != nil,
			"count", len(urls),
			"newest", newest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
