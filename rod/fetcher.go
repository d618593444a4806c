package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/go-rod/rod/lib/proto"
)

// Rendering defaults.
const (
	DefaultPageTimeout = 30 * time.Second
	DefaultSettle      = 500 * time.Millisecond
)

// Ensure Fetcher implements postcraft.Fetcher at compile time.
var _ postcraft.Fetcher = (*Fetcher)(nil)

// Fetcher returns the HTML of a page after its scripts have run, for blogs
// that render posts client-side. It is safe for concurrent use.
type Fetcher struct {
	manager     *BrowserManager
	pageTimeout time.Duration
	settle      time.Duration
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithPageTimeout bounds the time spent rendering a single page.
func WithPageTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.pageTimeout = d
	}
}

// WithSettle sets how long the DOM must stay unchanged before the page is
// considered rendered. Zero skips the wait.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithUserAgent overrides the browser's User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher returns a Fetcher rendering pages with the browser of manager.
// Closing the Fetcher closes the manager.
func NewFetcher(manager *BrowserManager, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager:     manager,
		pageTimeout: DefaultPageTimeout,
		settle:      DefaultSettle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.manager.Acquire()
	if errors.Is(err, ErrClosed) {
		return "", postcraft.Errorf(postcraft.EINVALID, "fetcher is closed")
	} else if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if f.pageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.pageTimeout)
		defer cancel()
	}
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", fmt.Errorf("set user agent: %w", err)
		}
	}
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for load: %w", err)
	}
	if f.settle > 0 {
		if err := page.WaitDOMStable(f.settle, 0); err != nil {
			return "", fmt.Errorf("wait for render: %w", err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
