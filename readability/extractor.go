// Package readability extracts the main article from blog pages using
// go-readability. It backs up the trafilatura extractor on layouts the
// latter misses.
package readability

import (
	"strings"

	"github.com/fwojciec/postcraft"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements postcraft.Extractor at compile time.
var _ postcraft.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article. The byline and excerpt
// become the author and description.
func (e *Extractor) Extract(rawHTML string) (*postcraft.ExtractResult, error) {
	if rawHTML == "" {
		return nil, postcraft.Errorf(postcraft.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &postcraft.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Author:      strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(article.Byline), "By ")),
		Description: article.Excerpt,
	}, nil
}
