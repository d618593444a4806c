package postcraft

import (
	"context"
	"strings"
	"time"
)

// DefaultTitle is used when neither the caller nor the body yields a title.
const DefaultTitle = "Untitled blog post"

// ArticleInput is the input to the generation pipeline.
// It is not modified by the pipeline.
type ArticleInput struct {
	Title        string       `json:"title"`
	Body         string       `json:"body"`
	URL          string       `json:"url,omitempty"`
	Tone         Tone         `json:"tone"`
	CallToAction CallToAction `json:"callToAction"`
	Audience     string       `json:"audience,omitempty"`
	Hashtags     []string     `json:"customHashtags,omitempty"`
}

// Article is a blog post retrieved from the web.
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Published   time.Time `json:"published,omitzero"`
	Content     string    `json:"content"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// ArticleFetcher retrieves a blog post and reduces it to plain text.
type ArticleFetcher interface {
	// FetchArticle returns the best-effort title and body of the page at url.
	// Returns EFETCH if the page cannot be retrieved or has no readable content,
	// and EINVALID if url is not an http(s) URL.
	FetchArticle(ctx context.Context, url string) (*Article, error)
}

// ArticleCache stores fetched articles keyed by URL.
// Only retrieved source material is cached, never generated posts.
type ArticleCache interface {
	// FindArticle returns the cached article for url.
	// Returns ENOTFOUND if there is no entry or the entry has expired.
	FindArticle(ctx context.Context, url string) (*Article, error)

	// SaveArticle stores or replaces the cached article for its URL.
	SaveArticle(ctx context.Context, article *Article) error
}

// GenerateRequest is what a user submits: a URL, pasted text, or both,
// plus the voice settings.
type GenerateRequest struct {
	URL           string       `json:"url,omitempty"`
	FallbackTitle string       `json:"fallbackTitle,omitempty"`
	Content       string       `json:"customSummary,omitempty"`
	Tone          Tone         `json:"tone"`
	CallToAction  CallToAction `json:"callToAction"`
	Audience      string       `json:"audience,omitempty"`
	Hashtags      []string     `json:"customHashtags,omitempty"`
}

// Request field limits, in characters.
const (
	MaxFallbackTitleChars = 160
	MaxPastedChars        = 8000
	MaxAudienceChars      = 160
	MaxHashtagChars       = 60
)

// Validate returns an error if the request contains invalid fields. An empty
// tone or call to action is allowed and means the default.
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" && strings.TrimSpace(r.Content) == "" {
		return Errorf(EINVALID, "Provide a blog URL or paste the blog content.")
	}
	if strings.TrimSpace(r.URL) != "" {
		if _, err := ParseURL(r.URL); err != nil {
			return err
		}
	}
	if RuneCount(r.FallbackTitle) > MaxFallbackTitleChars {
		return Errorf(EINVALID, "Title must be at most %d characters.", MaxFallbackTitleChars)
	}
	if RuneCount(r.Content) > MaxPastedChars {
		return Errorf(EINVALID, "Pasted content must be at most %d characters.", MaxPastedChars)
	}
	if RuneCount(r.Audience) > MaxAudienceChars {
		return Errorf(EINVALID, "Audience must be at most %d characters.", MaxAudienceChars)
	}
	for _, tag := range r.Hashtags {
		if RuneCount(tag) > MaxHashtagChars {
			return Errorf(EINVALID, "Hashtags must be at most %d characters.", MaxHashtagChars)
		}
	}
	if r.Tone != "" && !r.Tone.Valid() {
		return Errorf(EINVALID, "Unknown tone %q.", r.Tone)
	}
	if r.CallToAction != "" && !r.CallToAction.Valid() {
		return Errorf(EINVALID, "Unknown call to action %q.", r.CallToAction)
	}
	return nil
}

// Resolution is a GenerateRequest turned into pipeline input.
type Resolution struct {
	Input *ArticleInput

	// Warnings describe recoverable problems, such as a failed fetch that
	// was replaced by pasted text.
	Warnings []string
}

// Resolver turns a GenerateRequest into an ArticleInput, fetching the
// article when a URL is given.
type Resolver interface {
	// Resolve returns EINVALID when the request carries neither a URL nor
	// content, EFETCH when the page could not be fetched and no fallback text
	// exists, and EEMPTY when no readable content remains. A failed
	// Resolution may still carry warnings.
	Resolve(ctx context.Context, req *GenerateRequest) (*Resolution, error)
}
