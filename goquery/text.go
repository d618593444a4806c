package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postcraft"
)

// Ensure TextConverter implements postcraft.Converter at compile time.
var _ postcraft.Converter = (*TextConverter)(nil)

// nonProseSelectors are removed before text is read. Headings and tables
// rarely end in punctuation and would run into the next sentence.
var nonProseSelectors = "script, style, noscript, template, svg, button, form, iframe, figure, img, pre, table, h1, h2, h3, h4, h5, h6"

// blockSelectors each hold one paragraph of prose.
var blockSelectors = "p, li, blockquote, dt, dd"

// TextConverter reduces article HTML to plain text, one paragraph per block.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert implements postcraft.Converter. Blocks that contain other blocks
// are read through their children. List items without terminal punctuation
// get a period so they stay separate sentences. HTML without any block
// element yields its whole text.
func (c *TextConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", postcraft.Errorf(postcraft.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", postcraft.Errorf(postcraft.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(nonProseSelectors).Remove()

	var blocks []string
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		if s.Find(blockSelectors).Length() > 0 {
			return
		}
		text := postcraft.NormalizeWhitespace(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" && !endsSentence(text) {
			text += "."
		}
		blocks = append(blocks, text)
	})
	if len(blocks) == 0 {
		return postcraft.NormalizeWhitespace(doc.Text()), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?") || strings.HasSuffix(s, ":") ||
		strings.HasSuffix(s, postcraft.Ellipsis)
}
