package postcraft

import "strings"

// DefaultHashtagLimit caps the assembled hashtag set.
const DefaultHashtagLimit = 8

// NormalizeHashtag cleans a raw hashtag: whitespace and every character
// other than ASCII letters, digits and '_' are removed and a single leading
// '#' is ensured. Reports false if fewer than two characters remain after
// the marker.
func NormalizeHashtag(raw string) (string, bool) {
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range raw {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	tag := b.String()
	if len(tag) <= 2 {
		return "", false
	}
	return tag, true
}

// AssembleHashtags merges caller-supplied hashtags with keyword-derived ones.
// Custom tags keep their casing and come first; keyword tags are lowercased.
// Duplicates are dropped case-insensitively, keeping the first spelling, and
// the result holds at most limit tags (DefaultHashtagLimit if limit <= 0).
// Malformed entries are skipped.
func AssembleHashtags(keywords, custom []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultHashtagLimit
	}

	tags := []string{}
	seen := make(map[string]struct{})
	add := func(tag string) bool {
		key := strings.ToLower(tag)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
		return len(tags) < limit
	}

	for _, raw := range custom {
		tag, ok := NormalizeHashtag(raw)
		if !ok {
			continue
		}
		if !add(tag) {
			return tags
		}
	}
	for _, kw := range keywords {
		tag, ok := NormalizeHashtag(kw)
		if !ok {
			continue
		}
		if !add(strings.ToLower(tag)) {
			return tags
		}
	}
	return tags
}

// ParseHashtagList splits comma- or newline-separated hashtag input.
// Entries are trimmed and empty entries dropped; no other cleaning happens.
func ParseHashtagList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// SanitizeHashtags normalizes caller-supplied hashtags, dropping malformed
// entries and exact duplicates. Returns nil if nothing usable remains.
func SanitizeHashtags(raw []string) []string {
	var tags []string
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		tag, ok := NormalizeHashtag(strings.TrimSpace(r))
		if !ok {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
