package postcraft

import "time"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads, comments) has been removed.
	ContentHTML string

	// Author, Description and Published are best-effort metadata and may be empty.
	Author      string
	Description string
	Published   time.Time
}

// Extractor extracts the main article from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	Extract(html string) (*ExtractResult, error)
}
