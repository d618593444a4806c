// Package article retrieves blog posts and turns user requests into
// generation input.
package article

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/postcraft"
)

// DefaultMaxContentChars caps the body kept from a fetched page.
const DefaultMaxContentChars = 32000

// ThinContentChars is the content length under which a page is re-fetched
// with the Renderer.
const ThinContentChars = 500

// Ensure Fetcher implements postcraft.ArticleFetcher.
var _ postcraft.ArticleFetcher = (*Fetcher)(nil)

// Fetcher downloads a page, extracts its main content and reduces it to
// plain text.
type Fetcher struct {
	Fetcher postcraft.Fetcher

	// Renderer re-fetches pages whose plain HTML yields thin content,
	// usually a headless browser. Optional.
	Renderer postcraft.Fetcher

	// Extractors are tried in order. The first non-empty title and the first
	// non-empty content win, possibly from different extractors.
	Extractors []postcraft.Extractor
	Converter  postcraft.Converter

	// Cache and RateLimiter are optional.
	Cache       postcraft.ArticleCache
	RateLimiter postcraft.DomainLimiter

	// RetryDelays defaults to DefaultRetryDelays when nil.
	RetryDelays     []time.Duration
	MaxContentChars int
	Logger          *slog.Logger
	Now             func() time.Time
}

// FetchArticle implements postcraft.ArticleFetcher.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*postcraft.Article, error) {
	u, err := postcraft.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	key := u.String()

	if f.Cache != nil {
		cached, err := f.Cache.FindArticle(ctx, key)
		if err == nil {
			return cached, nil
		}
		if postcraft.ErrorCode(err) != postcraft.ENOTFOUND {
			f.logger().Warn("cache lookup failed", "url", key, "err", err)
		}
	}

	if f.RateLimiter != nil {
		if err := f.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, postcraft.Errorf(postcraft.EFETCH, "Request to %s was cancelled.", u.Hostname())
		}
	}

	delays := f.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, key, f.Fetcher.Fetch, f.Logger, delays)
	if err != nil {
		return nil, postcraft.Errorf(postcraft.EFETCH, "Could not retrieve %s: %s.", key, strings.TrimRight(reason(err), "."))
	}

	a := f.extract(html)
	if f.Renderer != nil && postcraft.RuneCount(a.Content) < ThinContentChars {
		if rendered := f.render(ctx, key); rendered != nil && ContentDiffers(a, rendered) {
			a = rendered
		}
	}
	if a.Content == "" {
		return nil, postcraft.Errorf(postcraft.EFETCH, "No readable content found at %s.", key)
	}

	limit := f.MaxContentChars
	if limit <= 0 {
		limit = DefaultMaxContentChars
	}
	a.URL = key
	a.Content = postcraft.TruncateWords(a.Content, limit)
	a.FetchedAt = f.now().UTC()

	if f.Cache != nil {
		if err := f.Cache.SaveArticle(ctx, a); err != nil {
			f.logger().Warn("cache store failed", "url", key, "err", err)
		}
	}

	return a, nil
}

// render fetches url with the Renderer and extracts it. Returns nil when
// rendering fails.
func (f *Fetcher) render(ctx context.Context, url string) *postcraft.Article {
	html, err := f.Renderer.Fetch(ctx, url)
	if err != nil {
		f.logger().Warn("render failed", "url", url, "err", err)
		return nil
	}
	return f.extract(html)
}

// ContentDiffers reports whether rendered content is more than 50% longer
// than the plain fetch, meaning JavaScript adds meaningful content.
func ContentDiffers(plain, rendered *postcraft.Article) bool {
	p, r := postcraft.RuneCount(plain.Content), postcraft.RuneCount(rendered.Content)
	if p == 0 {
		return r > 0
	}
	return float64(r) > float64(p)*1.5
}

// extract runs the extractor chain. Each field comes from the first
// extractor that fills it; content is reduced to plain text.
func (f *Fetcher) extract(html string) *postcraft.Article {
	a := &postcraft.Article{}
	for _, e := range f.Extractors {
		res, err := e.Extract(html)
		if err != nil || res == nil {
			continue
		}
		if a.Title == "" {
			a.Title = postcraft.NormalizeWhitespace(res.Title)
		}
		if a.Author == "" {
			a.Author = postcraft.NormalizeWhitespace(res.Author)
		}
		if a.Description == "" {
			a.Description = postcraft.NormalizeWhitespace(res.Description)
		}
		if a.Published.IsZero() {
			a.Published = res.Published
		}
		if a.Content == "" && strings.TrimSpace(res.ContentHTML) != "" {
			a.Content = f.toText(res.ContentHTML)
		}
		if a.Title != "" && a.Content != "" {
			break
		}
	}
	return a
}

func (f *Fetcher) toText(html string) string {
	text, err := f.Converter.Convert(html)
	if err != nil {
		return ""
	}
	return postcraft.NormalizeWhitespace(text)
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// reason returns the message of an application error, or the raw error text.
func reason(err error) string {
	var e *postcraft.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
