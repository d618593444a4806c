package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Engine identifies the software a blog is published with.
type Engine string

// Blog engines with known content containers.
const (
	EngineUnknown   Engine = ""
	EngineWordPress Engine = "wordpress"
	EngineGhost     Engine = "ghost"
	EngineMedium    Engine = "medium"
	EngineSubstack  Engine = "substack"
	EngineHugo      Engine = "hugo"
	EngineJekyll    Engine = "jekyll"
)

// engineSelectors are tried before the generic content selectors.
var engineSelectors = map[Engine][]string{
	EngineWordPress: {".entry-content", ".wp-block-post-content"},
	EngineGhost:     {".gh-content", ".post-full-content", ".kg-post"},
	EngineMedium:    {"article section", "article"},
	EngineSubstack:  {".available-content .body", ".body.markup"},
	EngineHugo:      {".post-content", ".article-content", ".content"},
	EngineJekyll:    {".post-content", ".e-content"},
}

// Detector identifies blog engines from HTML content.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified engine.
// Returns EngineUnknown if the engine cannot be determined.
func (d *Detector) Detect(html string) Engine {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return EngineUnknown
	}
	return detect(doc)
}

func detect(doc *goquery.Document) Engine {
	// The generator tag is the most reliable marker when present.
	if engine := detectFromMetaGenerator(doc); engine != EngineUnknown {
		return engine
	}

	switch {
	case hasSelector(doc, `link[href*="/wp-content/"], script[src*="/wp-includes/"], body.wp-site-blocks, .wp-block-post-content`):
		return EngineWordPress
	case hasSelector(doc, ".gh-content, .gh-head, .kg-card"):
		return EngineGhost
	case hasSelector(doc, `meta[property="al:android:package"][content="com.medium.reader"]`):
		return EngineMedium
	case hasSelector(doc, `link[href*="substackcdn.com"], .available-content`):
		return EngineSubstack
	}
	return EngineUnknown
}

func detectFromMetaGenerator(doc *goquery.Document) Engine {
	generator := strings.ToLower(meta(doc, `meta[name="generator"]`))
	if generator == "" {
		return EngineUnknown
	}

	switch {
	case strings.Contains(generator, "wordpress"):
		return EngineWordPress
	case strings.Contains(generator, "ghost"):
		return EngineGhost
	case strings.Contains(generator, "medium"):
		return EngineMedium
	case strings.Contains(generator, "substack"):
		return EngineSubstack
	case strings.Contains(generator, "hugo"):
		return EngineHugo
	case strings.Contains(generator, "jekyll"):
		return EngineJekyll
	}
	return EngineUnknown
}

func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
