// Package generate runs the full pipeline from article text to social posts.
package generate

import (
	"strings"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/compose"
)

// Ensure Generator implements postcraft.Generator.
var _ postcraft.Generator = (*Generator)(nil)

// Generator turns an ArticleInput into a GenerationResult. It holds only
// read-only configuration and is safe for concurrent use.
type Generator struct {
	keywords     postcraft.KeywordOptions
	summary      postcraft.SummaryOptions
	wpm          int
	hashtagLimit int
	composer     *compose.Composer
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxKeywords sets the maximum number of keywords.
func WithMaxKeywords(n int) Option {
	return func(g *Generator) {
		g.keywords.Max = n
	}
}

// WithStopWords replaces the built-in stop word list.
func WithStopWords(words []string) Option {
	return func(g *Generator) {
		g.keywords.StopWords = words
	}
}

// WithSummary sets the summary budgets.
func WithSummary(opts postcraft.SummaryOptions) Option {
	return func(g *Generator) {
		g.summary = opts
	}
}

// WithWordsPerMinute sets the assumed reading speed.
func WithWordsPerMinute(wpm int) Option {
	return func(g *Generator) {
		g.wpm = wpm
	}
}

// WithHashtagLimit caps the assembled hashtags.
func WithHashtagLimit(n int) Option {
	return func(g *Generator) {
		g.hashtagLimit = n
	}
}

// WithComposer sets the composer used to render posts.
func WithComposer(c *compose.Composer) Option {
	return func(g *Generator) {
		g.composer = c
	}
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		wpm:          postcraft.DefaultWordsPerMinute,
		hashtagLimit: postcraft.DefaultHashtagLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.composer == nil {
		g.composer = compose.MustNewComposer(compose.Config{})
	}
	return g
}

// Generate implements postcraft.Generator. The input is not modified.
func (g *Generator) Generate(in *postcraft.ArticleInput) (*postcraft.GenerationResult, error) {
	if in == nil {
		return nil, postcraft.Errorf(postcraft.EEMPTY, "no content to generate from")
	}

	body := postcraft.NormalizeWhitespace(in.Body)
	if body == "" {
		return nil, postcraft.Errorf(postcraft.EEMPTY, "no content to generate from")
	}

	title := postcraft.NormalizeWhitespace(in.Title)
	if title == "" {
		title = postcraft.DeriveTitle(body)
	}
	if title == "" {
		title = postcraft.DefaultTitle
	}

	keywords := postcraft.KeywordTerms(postcraft.ExtractKeywords(body, g.keywords))
	summary := postcraft.Summarize(body, g.summary)
	hashtags := postcraft.AssembleHashtags(keywords, in.Hashtags, g.hashtagLimit)

	posts := g.composer.ComposeAll(compose.Draft{
		Title:        title,
		Summary:      g.postSummary(body, title, summary),
		URL:          in.URL,
		Audience:     postcraft.NormalizeWhitespace(in.Audience),
		Hashtags:     hashtags,
		Tone:         in.Tone,
		CallToAction: in.CallToAction,
	})

	return &postcraft.GenerationResult{
		Title:                title,
		URL:                  in.URL,
		Summary:              summary,
		Keywords:             keywords,
		Hashtags:             hashtags,
		EstimatedReadingTime: postcraft.EstimateReadingTime(body, g.wpm),
		Posts:                posts,
	}, nil
}

// postSummary returns the summary used in post copy. When the body opens
// with the title, as it does for derived titles, that sentence is skipped so
// the hook and the summary do not repeat it.
func (g *Generator) postSummary(body, title, summary string) string {
	lead := postcraft.DeriveTitle(body)
	if !strings.EqualFold(trimTerminal(lead), trimTerminal(title)) {
		return summary
	}
	for first := range postcraft.Sentences(body) {
		rest, _ := strings.CutPrefix(body, first)
		return postcraft.Summarize(strings.TrimSpace(rest), g.summary)
	}
	return summary
}

func trimTerminal(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".!?"+postcraft.Ellipsis+" ")
}
