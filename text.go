package postcraft

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Ellipsis marks text that was cut short.
const Ellipsis = "…"

// NormalizeWhitespace returns s in canonical plain-text form: NFC-composed,
// control characters removed, whitespace runs collapsed to a single space,
// and no leading or trailing whitespace.
func NormalizeWhitespace(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
			continue
		case unicode.IsControl(r), r == utf8.RuneError:
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RuneCount returns the length of s in characters.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// TruncateWords shortens s to at most limit characters, cutting at a word
// boundary when possible and appending an ellipsis. Strings that already fit
// are returned unchanged.
func TruncateWords(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	cut := runes[:limit-1]
	if !unicode.IsSpace(runes[limit-1]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}

	out := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:-", r)
	})
	return out + Ellipsis
}
