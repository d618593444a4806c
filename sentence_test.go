package postcraft_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/fwojciec/postcraft"
	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	t.Parallel()

	t.Run("splits on terminal punctuation followed by whitespace", func(t *testing.T) {
		t.Parallel()

		got := slices.Collect(postcraft.Sentences("AI helps teams ship faster. Our new tool cuts review time by half. Try it today!"))

		assert.Equal(t, []string{
			"AI helps teams ship faster.",
			"Our new tool cuts review time by half.",
			"Try it today!",
		}, got)
	})

	t.Run("keeps decimals and abbreviations without trailing space together", func(t *testing.T) {
		t.Parallel()

		got := slices.Collect(postcraft.Sentences("Version 2.5 is out. Really?! Yes."))

		assert.Equal(t, []string{"Version 2.5 is out.", "Really?!", "Yes."}, got)
	})

	t.Run("returns whole text when there is no terminator", func(t *testing.T) {
		t.Parallel()

		got := slices.Collect(postcraft.Sentences("  no punctuation here  "))

		assert.Equal(t, []string{"no punctuation here"}, got)
	})

	t.Run("yields nothing for empty text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, slices.Collect(postcraft.Sentences("   ")))
	})

	t.Run("can be ranged over more than once", func(t *testing.T) {
		t.Parallel()

		seq := postcraft.Sentences("One. Two. Three.")

		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("stops early when the consumer breaks", func(t *testing.T) {
		t.Parallel()

		var first string
		for s := range postcraft.Sentences("One. Two. Three.") {
			first = s
			break
		}

		assert.Equal(t, "One.", first)
	})
}

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	t.Run("uses first sentence", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Shipping faster with AI.", postcraft.DeriveTitle("Shipping faster with AI. More text follows."))
	})

	t.Run("caps length", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("word ", 60)
		got := postcraft.DeriveTitle(body)

		assert.LessOrEqual(t, postcraft.RuneCount(got), postcraft.TitleMaxChars)
		assert.True(t, strings.HasPrefix(body, got))
	})

	t.Run("returns empty for empty body", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, postcraft.DeriveTitle(""))
	})
}
