package postcraft_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/postcraft"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("takes the leading sentences", func(t *testing.T) {
		t.Parallel()

		body := "AI helps teams ship faster. Our new tool cuts review time by half. Try it today!"

		got := postcraft.Summarize(body, postcraft.SummaryOptions{})

		assert.Equal(t, "AI helps teams ship faster. Our new tool cuts review time by half.", got)
	})

	t.Run("returns the body when it fits both budgets", func(t *testing.T) {
		t.Parallel()

		body := "Short post. Nothing more."

		assert.Equal(t, body, postcraft.Summarize(body, postcraft.SummaryOptions{}))
	})

	t.Run("returns unpunctuated body unchanged", func(t *testing.T) {
		t.Parallel()

		body := "just some notes without punctuation"

		assert.Equal(t, body, postcraft.Summarize(body, postcraft.SummaryOptions{}))
	})

	t.Run("stops at a sentence boundary before exceeding the character budget", func(t *testing.T) {
		t.Parallel()

		body := "First sentence is here. Second sentence is quite a bit longer than the first."

		got := postcraft.Summarize(body, postcraft.SummaryOptions{MaxSentences: 3, MaxChars: 40})

		assert.Equal(t, "First sentence is here.", got)
	})

	t.Run("truncates an overlong first sentence with an ellipsis", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("lorem ipsum ", 50) + "end."

		got := postcraft.Summarize(body, postcraft.SummaryOptions{MaxChars: 50})

		assert.LessOrEqual(t, postcraft.RuneCount(got), 50)
		assert.True(t, strings.HasSuffix(got, postcraft.Ellipsis))
		assert.True(t, strings.HasPrefix(got, "lorem ipsum"))
	})

	t.Run("respects the sentence budget", func(t *testing.T) {
		t.Parallel()

		got := postcraft.Summarize("One. Two. Three. Four.", postcraft.SummaryOptions{MaxSentences: 3})

		assert.Equal(t, "One. Two. Three.", got)
	})

	t.Run("returns empty for empty body", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, postcraft.Summarize("", postcraft.SummaryOptions{}))
	})

	t.Run("never exceeds the character budget", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("A sentence of moderate length goes here. ", 30)
		for _, limit := range []int{10, 45, 100, 280} {
			got := postcraft.Summarize(body, postcraft.SummaryOptions{MaxSentences: 10, MaxChars: limit})
			assert.LessOrEqual(t, postcraft.RuneCount(got), limit)
		}
	})
}
