// Package batch generates posts for many blog URLs at once.
package batch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of URLs processed at once.
const DefaultConcurrency = 4

// Runner resolves and generates posts for a list of URLs.
type Runner struct {
	Resolver    postcraft.Resolver
	Generator   postcraft.Generator
	Concurrency int
	Logger      *slog.Logger
}

// Item is the outcome for one URL.
type Item struct {
	URL      string                      `json:"url"`
	Result   *postcraft.GenerationResult `json:"result,omitempty"`
	Warnings []string                    `json:"warnings,omitempty"`
	Err      error                       `json:"-"`
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type outcome struct {
	position int
	item     Item
}

// Run processes urls and returns one Item per distinct URL, in input order.
// Only the voice settings of template (tone, call to action, audience,
// hashtags) apply to every URL. Per-URL failures are recorded on the Item
// and never abort the run.
func (r *Runner) Run(ctx context.Context, urls []string, template *postcraft.GenerateRequest, progress ProgressFunc) []Item {
	urls = Unique(urls)
	items := make([]Item, len(urls))
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	ch := make(chan outcome, total)
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				ch <- outcome{position: i, item: r.process(ctx, url, template)}
				return nil
			})
		}
		_ = g.Wait()
		close(ch)
	}()

	completed := 0
	for o := range ch {
		completed++
		items[o.position] = o.item
		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       o.item.URL,
		}
		if o.item.Err != nil {
			event.Type = ProgressFailed
			event.Error = o.item.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return items
}

func (r *Runner) process(ctx context.Context, url string, template *postcraft.GenerateRequest) Item {
	item := Item{URL: url}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}

	req := postcraft.GenerateRequest{URL: url}
	if template != nil {
		req.Tone = template.Tone
		req.CallToAction = template.CallToAction
		req.Audience = template.Audience
		req.Hashtags = template.Hashtags
	}

	res, err := r.Resolver.Resolve(ctx, &req)
	if res != nil {
		item.Warnings = res.Warnings
	}
	if err != nil {
		item.Err = err
		r.logFailure(url, err)
		return item
	}

	result, err := r.Generator.Generate(res.Input)
	if err != nil {
		item.Err = err
		r.logFailure(url, err)
		return item
	}
	item.Result = result
	return item
}

func (r *Runner) logFailure(url string, err error) {
	if r.Logger != nil {
		r.Logger.Warn("batch item failed", "url", url, "err", err)
	}
}

// Unique trims urls, drops blank entries and removes duplicates, keeping the
// first occurrence. Valid URLs are compared in canonical form, so URLs that
// differ only by fragment count as one; invalid entries are kept verbatim
// so that they surface as item errors. Bloom filter hits are confirmed
// against the exact set, so a false positive never drops a URL.
func Unique(urls []string) []string {
	filter := bloom.NewFilter(uint(len(urls)), bloom.DefaultFalsePositiveRate)
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		key := raw
		if u, err := postcraft.ParseURL(raw); err == nil {
			key = u.String()
		}
		if filter.Test(key) {
			if _, dup := seen[key]; dup {
				continue
			}
		}
		filter.Add(key)
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// Failed returns the number of items that carry an error.
func Failed(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
