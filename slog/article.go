package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/postcraft"
)

var (
	_ postcraft.ArticleFetcher = (*LoggingArticleFetcher)(nil)
	_ postcraft.Resolver       = (*LoggingResolver)(nil)
)

// LoggingArticleFetcher wraps an ArticleFetcher with logging.
// Failures are logged at warn level.
type LoggingArticleFetcher struct {
	next   postcraft.ArticleFetcher
	logger *slog.Logger
}

// NewLoggingArticleFetcher creates a new LoggingArticleFetcher.
func NewLoggingArticleFetcher(next postcraft.ArticleFetcher, logger *slog.Logger) *LoggingArticleFetcher {
	return &LoggingArticleFetcher{next: next, logger: logger}
}

// FetchArticle delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingArticleFetcher) FetchArticle(ctx context.Context, url string) (a *postcraft.Article, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, "code", postcraft.ErrorCode(err), "err", err)
		} else {
			attrs = append(attrs, "title", a.Title, "chars", postcraft.RuneCount(a.Content))
		}
		f.logger.Log(ctx, level, "fetch article", attrs...)
	}(time.Now())
	return f.next.FetchArticle(ctx, url)
}

// LoggingResolver wraps a Resolver with logging.
type LoggingResolver struct {
	next   postcraft.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next postcraft.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, req *postcraft.GenerateRequest) (res *postcraft.Resolution, err error) {
	defer func(begin time.Time) {
		warnings := 0
		if res != nil {
			warnings = len(res.Warnings)
		}
		r.logger.Info("resolve",
			"url", req.URL,
			"pasted", req.Content != "",
			"warnings", warnings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, req)
}
