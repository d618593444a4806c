package postcraft_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/postcraft"
	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	t.Run("excludes stop words and short tokens", func(t *testing.T) {
		t.Parallel()

		body := "AI helps teams ship faster. Our new tool cuts review time by half. Try it today!"

		terms := postcraft.KeywordTerms(postcraft.ExtractKeywords(body, postcraft.KeywordOptions{}))

		assert.Contains(t, terms, "teams")
		assert.Contains(t, terms, "tool")
		assert.Contains(t, terms, "review")
		assert.NotContains(t, terms, "our")
		assert.NotContains(t, terms, "by")
		assert.NotContains(t, terms, "ai")
		assert.Len(t, terms, postcraft.DefaultMaxKeywords)
	})

	t.Run("orders by frequency then first occurrence", func(t *testing.T) {
		t.Parallel()

		body := "Go is great. Go tooling is great. Tooling matters."

		got := postcraft.ExtractKeywords(body, postcraft.KeywordOptions{})

		assert.Equal(t, []postcraft.Keyword{
			{Term: "great", Score: 2},
			{Term: "tooling", Score: 2},
			{Term: "matters", Score: 1},
		}, got)
	})

	t.Run("merges terms case-insensitively", func(t *testing.T) {
		t.Parallel()

		got := postcraft.ExtractKeywords("Cloud cloud CLOUD", postcraft.KeywordOptions{})

		assert.Equal(t, []postcraft.Keyword{{Term: "cloud", Score: 3}}, got)
	})

	t.Run("skips purely numeric tokens", func(t *testing.T) {
		t.Parallel()

		terms := postcraft.KeywordTerms(postcraft.ExtractKeywords("2024 was the year of 5000 releases", postcraft.KeywordOptions{}))

		assert.Equal(t, []string{"year", "releases"}, terms)
	})

	t.Run("respects max", func(t *testing.T) {
		t.Parallel()

		got := postcraft.ExtractKeywords("alpha beta gamma delta", postcraft.KeywordOptions{Max: 2})

		assert.Equal(t, []string{"alpha", "beta"}, postcraft.KeywordTerms(got))
	})

	t.Run("uses custom stop words", func(t *testing.T) {
		t.Parallel()

		got := postcraft.ExtractKeywords("great tooling", postcraft.KeywordOptions{StopWords: []string{"Great"}})

		assert.Equal(t, []string{"tooling"}, postcraft.KeywordTerms(got))
	})

	t.Run("returns nothing for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, postcraft.ExtractKeywords("", postcraft.KeywordOptions{}))
	})

	t.Run("never returns duplicates", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("Platform platform PLATFORM engineering Engineering teams. ", 20)
		terms := postcraft.KeywordTerms(postcraft.ExtractKeywords(body, postcraft.KeywordOptions{}))

		seen := make(map[string]bool)
		for _, term := range terms {
			key := strings.ToLower(term)
			assert.False(t, seen[key], "duplicate term %q", term)
			seen[key] = true
		}
	})
}
