package postcraft

import (
	"iter"
	"strings"
	"unicode"
)

// TitleMaxChars caps titles derived from the body.
const TitleMaxChars = 120

// Sentences returns the sentences of text in order. A sentence ends at '.',
// '!' or '?' followed by whitespace; the terminator stays with its sentence.
// Text without a terminator yields a single sentence. The sequence can be
// ranged over any number of times.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		var prev rune
		for i, r := range text {
			if unicode.IsSpace(r) && isTerminal(prev) {
				if s := strings.TrimSpace(text[start:i]); s != "" {
					if !yield(s) {
						return
					}
				}
				start = i
			}
			prev = r
		}
		if s := strings.TrimSpace(text[start:]); s != "" {
			yield(s)
		}
	}
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// DeriveTitle returns the first sentence of body, cut to TitleMaxChars.
// Returns an empty string if body has no text.
func DeriveTitle(body string) string {
	for s := range Sentences(body) {
		runes := []rune(s)
		if len(runes) > TitleMaxChars {
			return strings.TrimSpace(string(runes[:TitleMaxChars]))
		}
		return s
	}
	return ""
}
