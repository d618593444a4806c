package article

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/postcraft"
)

// Ensure Resolver implements postcraft.Resolver.
var _ postcraft.Resolver = (*Resolver)(nil)

// Resolver turns a user request into pipeline input. A URL is fetched when
// present; pasted content is the fallback when the fetch fails or yields
// nothing.
type Resolver struct {
	Articles postcraft.ArticleFetcher
	Logger   *slog.Logger
}

// NewResolver returns a Resolver fetching through articles.
func NewResolver(articles postcraft.ArticleFetcher) *Resolver {
	return &Resolver{Articles: articles}
}

// Resolve implements postcraft.Resolver.
func (r *Resolver) Resolve(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := postcraft.NormalizeWhitespace(req.FallbackTitle)
	content := postcraft.NormalizeWhitespace(req.Content)
	warnings := []string{}

	var url string
	if strings.TrimSpace(req.URL) != "" {
		u, err := postcraft.ParseURL(req.URL)
		if err != nil {
			return nil, err
		}
		url = u.String()
	}

	fetchFailed := false
	if url != "" {
		a, err := r.Articles.FetchArticle(ctx, url)
		if err != nil {
			fetchFailed = true
			synopsis := "No fallback text provided."
			if content != "" {
				synopsis = "Falling back to the provided summary."
			}
			warnings = append(warnings, "Failed to fetch the blog post. "+reason(err)+" "+synopsis)
			if r.Logger != nil {
				r.Logger.Warn("fetch failed", "url", url, "err", err)
			}
		} else {
			if a.Title != "" {
				title = postcraft.NormalizeWhitespace(a.Title)
			}
			if c := postcraft.NormalizeWhitespace(a.Content); c != "" {
				content = c
			}
		}
	}

	if content == "" {
		code := postcraft.EEMPTY
		if fetchFailed {
			code = postcraft.EFETCH
		}
		return &postcraft.Resolution{Warnings: warnings},
			postcraft.Errorf(code, "Unable to extract content from the blog. Please paste a summary manually.")
	}

	if title == "" {
		title = postcraft.DeriveTitle(content)
	}
	if title == "" {
		title = postcraft.DefaultTitle
	}

	tone := req.Tone
	if tone == "" {
		tone = postcraft.DefaultTone
	}
	cta := req.CallToAction
	if cta == "" {
		cta = postcraft.DefaultCallToAction
	}

	return &postcraft.Resolution{
		Input: &postcraft.ArticleInput{
			Title:        title,
			Body:         content,
			URL:          url,
			Tone:         tone,
			CallToAction: cta,
			Audience:     postcraft.NormalizeWhitespace(req.Audience),
			Hashtags:     postcraft.SanitizeHashtags(req.Hashtags),
		},
		Warnings: warnings,
	}, nil
}
