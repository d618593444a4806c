// Package trafilatura extracts the main article from blog pages using
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/fwojciec/postcraft"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements postcraft.Extractor at compile time.
var _ postcraft.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Comments are dropped and repeated
// paragraphs are deduplicated, since neither belongs in a post summary.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article and its metadata.
func (e *Extractor) Extract(rawHTML string) (*postcraft.ExtractResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &postcraft.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Author:      result.Metadata.Author,
		Description: result.Metadata.Description,
		Published:   result.Metadata.Date,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
