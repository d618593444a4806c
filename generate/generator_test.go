package generate_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/compose"
	"github.com/fwojciec/postcraft/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = "AI helps teams ship faster. Our new tool cuts review time by half. Try it today!"

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("casual read now without url", func(t *testing.T) {
		t.Parallel()

		g := generate.NewGenerator()
		result, err := g.Generate(&postcraft.ArticleInput{
			Body:         sampleBody,
			Tone:         postcraft.ToneCasual,
			CallToAction: postcraft.CTAReadNow,
		})
		require.NoError(t, err)

		assert.Equal(t, "AI helps teams ship faster.", result.Title)
		assert.Equal(t, "AI helps teams ship faster. Our new tool cuts review time by half.", result.Summary)
		assert.Subset(t, result.Keywords, []string{"teams", "tool", "review"})
		assert.NotContains(t, result.Keywords, "our")
		assert.NotContains(t, result.Keywords, "by")
		assert.Equal(t, "1 min read", result.EstimatedReadingTime)
		assert.Empty(t, result.URL)

		require.Len(t, result.Posts, 4)
		for _, post := range result.Posts {
			assert.Contains(t, post.Copy, "Hey friends, we just posted: AI helps teams ship faster.", post.Platform)
			assert.Contains(t, post.Copy, "Read it now.", post.Platform)
			assert.Equal(t, 1, strings.Count(post.Copy, "AI helps teams ship faster"), post.Platform)
		}
		assert.Contains(t, result.Post("linkedin").Copy, "Our new tool cuts review time by half.")
	})

	t.Run("single sentence body is not repeated", func(t *testing.T) {
		t.Parallel()

		result, err := generate.NewGenerator().Generate(&postcraft.ArticleInput{
			Body: "AI helps teams ship faster.",
		})
		require.NoError(t, err)

		assert.Equal(t, "AI helps teams ship faster.", result.Summary)
		for _, post := range result.Posts {
			assert.Equal(t, 1, strings.Count(post.Copy, "AI helps teams ship faster"), post.Platform)
		}
	})

	t.Run("keeps supplied title", func(t *testing.T) {
		t.Parallel()

		result, err := generate.NewGenerator().Generate(&postcraft.ArticleInput{
			Title: "  Shipping   faster with AI ",
			Body:  sampleBody,
		})
		require.NoError(t, err)

		assert.Equal(t, "Shipping faster with AI", result.Title)
		assert.Contains(t, result.Post("linkedin").Copy, "New on the blog: Shipping faster with AI.")
		assert.Contains(t, result.Post("linkedin").Copy, "AI helps teams ship faster. Our new tool cuts review time by half.")
	})

	t.Run("normalizes the body", func(t *testing.T) {
		t.Parallel()

		result, err := generate.NewGenerator().Generate(&postcraft.ArticleInput{
			Body: "  AI helps teams\tship faster.\n\n\nOur new tool cuts review time by half.  ",
		})
		require.NoError(t, err)

		assert.Equal(t, "AI helps teams ship faster. Our new tool cuts review time by half.", result.Summary)
	})

	t.Run("custom hashtags come first", func(t *testing.T) {
		t.Parallel()

		result, err := generate.NewGenerator().Generate(&postcraft.ArticleInput{
			Body:     "SaaS pricing matters. SaaS teams care about pricing.",
			Hashtags: []string{"Product Marketing", "#SaaS!"},
		})
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(result.Hashtags), 2)
		assert.Equal(t, []string{"#ProductMarketing", "#SaaS"}, result.Hashtags[:2])
		saas := 0
		for _, tag := range result.Hashtags {
			if strings.EqualFold(tag, "#saas") {
				saas++
			}
		}
		assert.Equal(t, 1, saas)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		_, err := generate.NewGenerator().Generate(&postcraft.ArticleInput{Body: " \n\t "})
		assert.Equal(t, postcraft.EEMPTY, postcraft.ErrorCode(err))
	})

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()

		_, err := generate.NewGenerator().Generate(nil)
		assert.Equal(t, postcraft.EEMPTY, postcraft.ErrorCode(err))
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		in := &postcraft.ArticleInput{
			Body:     "  " + sampleBody,
			Hashtags: []string{"go lang"},
		}
		before := *in
		before.Hashtags = append([]string(nil), in.Hashtags...)

		_, err := generate.NewGenerator().Generate(in)
		require.NoError(t, err)

		assert.Equal(t, before, *in)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		in := &postcraft.ArticleInput{
			Body:         sampleBody,
			URL:          "https://example.com/post",
			Tone:         postcraft.TonePlayful,
			CallToAction: postcraft.CTASubscribe,
			Audience:     "platform teams",
			Hashtags:     []string{"DevEx"},
		}
		g := generate.NewGenerator()

		first, err := g.Generate(in)
		require.NoError(t, err)
		second, err := g.Generate(in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestGenerator_Generate_Options(t *testing.T) {
	t.Parallel()

	c, err := compose.NewComposer(compose.Config{
		Platforms: []postcraft.Platform{{Name: "bluesky", Label: "Bluesky", MaxChars: 300, IncludeLink: true, MaxHashtags: 2}},
	})
	require.NoError(t, err)

	g := generate.NewGenerator(
		generate.WithMaxKeywords(3),
		generate.WithStopWords([]string{"helps"}),
		generate.WithSummary(postcraft.SummaryOptions{MaxSentences: 1}),
		generate.WithWordsPerMinute(2),
		generate.WithHashtagLimit(2),
		generate.WithComposer(c),
	)

	result, err := g.Generate(&postcraft.ArticleInput{Body: sampleBody})
	require.NoError(t, err)

	assert.Equal(t, []string{"teams", "ship", "faster"}, result.Keywords)
	assert.Equal(t, []string{"#teams", "#ship"}, result.Hashtags)
	assert.Equal(t, "AI helps teams ship faster.", result.Summary)
	assert.Equal(t, "8 min read", result.EstimatedReadingTime)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "bluesky", result.Posts[0].Platform)
}

func TestGenerator_Generate_Budgets(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"One.",
		"no punctuation at all just a stream of words " + strings.Repeat("stream ", 500),
		strings.Repeat("A very long sentence that keeps going and going ", 100) + ".",
		strings.Repeat("Short one. ", 400),
		"Ünïcödé téxt with émojis 🚀🚀🚀. " + strings.Repeat("日本語のテキスト。 ", 300),
	}
	g := generate.NewGenerator()
	platforms := postcraft.DefaultPlatforms()

	for _, body := range bodies {
		for _, tone := range postcraft.Tones() {
			result, err := g.Generate(&postcraft.ArticleInput{
				Body:     body,
				URL:      "https://example.com/a/rather/long/path/to/the/article",
				Tone:     tone,
				Audience: "busy engineering managers",
				Hashtags: []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"},
			})
			require.NoError(t, err)

			require.Len(t, result.Posts, len(platforms))
			for i, post := range result.Posts {
				assert.Equal(t, platforms[i].Name, post.Platform)
				assert.LessOrEqual(t, postcraft.RuneCount(post.Copy), platforms[i].MaxChars, post.Platform)
			}
			assert.LessOrEqual(t, len(result.Keywords), postcraft.DefaultMaxKeywords)
			assert.LessOrEqual(t, len(result.Hashtags), postcraft.DefaultHashtagLimit)
			assert.LessOrEqual(t, postcraft.RuneCount(result.Summary), postcraft.DefaultSummaryChars)
		}
	}
}
