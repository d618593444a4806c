package postcraft

// Converter reduces HTML to plain text.
type Converter interface {
	// Convert returns the readable prose of html with markup removed.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}
