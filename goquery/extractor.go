// Package goquery extracts blog posts with CSS selectors. It reads the
// metadata blogs publish for social cards and falls back to common article
// containers, which makes it the last resort after the heuristic extractors.
package goquery

import (
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postcraft"
)

// Ensure Extractor implements postcraft.Extractor at compile time.
var _ postcraft.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order; the first match with enough text wins.
var contentSelectors = []string{
	`[itemprop="articleBody"]`,
	"article .entry-content",
	"article .post-content",
	".post-body",
	"article",
	"main",
	`[role="main"]`,
}

// noiseSelectors are removed before content is read.
var noiseSelectors = "script, style, noscript, nav, aside, footer, header, form, button, iframe, .share, .comments, #comments"

// minContentChars is the least text a container needs to count as the article.
const minContentChars = 80

// Extractor reads article metadata and content from well-known selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements postcraft.Extractor. Containers specific to the
// detected blog engine are tried first. When no container holds enough text,
// the page's paragraphs are used instead.
func (e *Extractor) Extract(html string) (*postcraft.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, postcraft.Errorf(postcraft.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, postcraft.Errorf(postcraft.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &postcraft.ExtractResult{
		Title: firstNonEmpty(
			meta(doc, `meta[property="og:title"]`),
			meta(doc, `meta[name="twitter:title"]`),
			strings.TrimSpace(doc.Find("h1").First().Text()),
			strings.TrimSpace(doc.Find("title").First().Text()),
		),
		Author: firstNonEmpty(
			meta(doc, `meta[name="author"]`),
			meta(doc, `meta[property="article:author"]`),
			strings.TrimSpace(doc.Find(`[rel="author"]`).First().Text()),
		),
		Description: firstNonEmpty(
			meta(doc, `meta[property="og:description"]`),
			meta(doc, `meta[name="description"]`),
		),
		Published: published(doc),
	}

	engine := detect(doc)
	doc.Find(noiseSelectors).Remove()
	result.ContentHTML = content(doc, slices.Concat(engineSelectors[engine], contentSelectors))

	return result, nil
}

func content(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if postcraft.RuneCount(strings.TrimSpace(node.Text())) < minContentChars {
			continue
		}
		if html, err := node.Html(); err == nil {
			return html
		}
	}

	var b strings.Builder
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if strings.TrimSpace(p.Text()) == "" {
			return
		}
		if html, err := goquery.OuterHtml(p); err == nil {
			b.WriteString(html)
			b.WriteByte('\n')
		}
	})
	return b.String()
}

func meta(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// published reads the publication date from article metadata or the first
// <time datetime> element.
func published(doc *goquery.Document) time.Time {
	candidates := []string{
		meta(doc, `meta[property="article:published_time"]`),
		meta(doc, `meta[itemprop="datePublished"]`),
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		candidates = append(candidates, strings.TrimSpace(v))
	}
	for _, c := range candidates {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, c); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
