package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/postcraft"
	main "github.com/fwojciec/postcraft/cmd/postcraft"
	"github.com/fwojciec/postcraft/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postBody = "AI helps teams ship faster. Our new tool cuts review time by half. Teams love faster reviews."

// env returns a Getenv backed by vars, with caching disabled unless set.
func env(vars map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		if key == "POSTCRAFT_CACHE" {
			return "none"
		}
		return ""
	}
}

// bodyResolver resolves every request to postBody.
func bodyResolver() *mock.Resolver {
	return &mock.Resolver{
		ResolveFn: func(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
			return &postcraft.Resolution{
				Input: &postcraft.ArticleInput{
					Title:        "AI helps teams ship faster",
					Body:         postBody,
					URL:          req.URL,
					Tone:         req.Tone,
					CallToAction: req.CallToAction,
					Audience:     req.Audience,
					Hashtags:     postcraft.SanitizeHashtags(req.Hashtags),
				},
				Warnings: []string{},
			}, nil
		},
	}
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	if m.Getenv == nil {
		m.Getenv = env(nil)
	}
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), args, &stdout, &stderr)
	require.NoError(t, m.Close())
	return stdout.String(), stderr.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no command shows help", func(t *testing.T) {
		t.Parallel()

		stdout, stderr, err := run(t, &main.Main{})

		require.Error(t, err)
		assert.Contains(t, stdout, "Usage: postcraft")
		assert.Contains(t, stderr, "no command specified")
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, &main.Main{}, "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "generate")
		assert.Contains(t, stdout, "batch")
		assert.Contains(t, stdout, "serve")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, &main.Main{}, "publish")

		require.Error(t, err)
		assert.Contains(t, stderr, "error:")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, &main.Main{}, "--log-level", "loud", "platforms")

		assert.ErrorIs(t, err, main.ErrUnknownLogLevel)
		assert.Contains(t, stderr, "log level must be one of")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, &main.Main{}, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "platforms")

		require.Error(t, err)
		assert.Contains(t, stderr, "read config")
	})

	t.Run("config path from environment", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "postcraft.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
compose:
  platforms:
    - name: mastodon
      label: Mastodon
      maxChars: 500
      includeLink: true
      maxHashtags: 4
`), 0644))

		m := &main.Main{Getenv: env(map[string]string{"POSTCRAFT_CONFIG": path})}
		stdout, _, err := run(t, m, "platforms")

		require.NoError(t, err)
		assert.Contains(t, stdout, "mastodon  Mastodon  500")
		assert.NotContains(t, stdout, "linkedin")
	})
}

func TestGenerateCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints posts as text", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{Resolver: bodyResolver()}
		stdout, _, err := run(t, m, "generate", "https://example.com/post", "--tone", "casual")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "AI helps teams ship faster\nhttps://example.com/post · 1 min read\n"))
		assert.Contains(t, stdout, "── X ")
		assert.Contains(t, stdout, "── LinkedIn ")
		assert.Contains(t, stdout, "Hey friends, we just posted: AI helps teams ship faster")
	})

	t.Run("json output with selected platforms", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{Resolver: bodyResolver()}
		stdout, _, err := run(t, m, "generate", "https://example.com/post", "-o", "json", "-p", "x", "-p", "instagram", "-H", "Go,SaaS")

		require.NoError(t, err)
		var res struct {
			Title    string                 `json:"title"`
			Hashtags []string               `json:"hashtags"`
			Posts    []postcraft.SocialPost `json:"posts"`
			Warnings []string               `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &res))
		assert.Equal(t, "AI helps teams ship faster", res.Title)
		assert.Equal(t, []string{"#Go", "#SaaS"}, res.Hashtags[:2])
		require.Len(t, res.Posts, 2)
		assert.Equal(t, "x", res.Posts[0].Platform)
		assert.Equal(t, "instagram", res.Posts[1].Platform)
		assert.Equal(t, []string{}, res.Warnings)
	})

	t.Run("unknown platform", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{Resolver: bodyResolver()}
		_, stderr, err := run(t, m, "generate", "https://example.com/post", "-p", "myspace")

		assert.Equal(t, postcraft.EINVALID, postcraft.ErrorCode(err))
		assert.Contains(t, stderr, `Unknown platform "myspace".`)
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{Resolver: bodyResolver()}
		stdout, _, err := run(t, m, "generate", "https://example.com/post", "-o", "markdown")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "---\n"))
		assert.Contains(t, stdout, "# AI helps teams ship faster")
		assert.Contains(t, stdout, "## Instagram")
	})

	t.Run("reads content from stdin and passes voice flags", func(t *testing.T) {
		t.Parallel()

		var got *postcraft.GenerateRequest
		resolver := &mock.Resolver{
			ResolveFn: func(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
				got = req
				return bodyResolver().Resolve(ctx, req)
			},
		}
		m := &main.Main{Resolver: resolver, Stdin: strings.NewReader("Pasted post.")}

		_, _, err := run(t, m, "generate", "-f", "-", "--title", "My post", "--cta", "subscribe", "-a", "founders")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Pasted post.", got.Content)
		assert.Equal(t, "My post", got.FallbackTitle)
		assert.Equal(t, postcraft.CTASubscribe, got.CallToAction)
		assert.Equal(t, postcraft.ToneProfessional, got.Tone)
		assert.Equal(t, "founders", got.Audience)
	})

	t.Run("prints warnings and errors", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.Resolver{
			ResolveFn: func(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
				return &postcraft.Resolution{Warnings: []string{"Failed to fetch the blog post. No fallback text provided."}},
					postcraft.Errorf(postcraft.EFETCH, "Unable to extract content from the blog. Please paste a summary manually.")
			},
		}
		m := &main.Main{Resolver: resolver}

		_, stderr, err := run(t, m, "generate", "https://example.com/post")

		assert.Equal(t, postcraft.EFETCH, postcraft.ErrorCode(err))
		assert.Contains(t, stderr, "warning: Failed to fetch the blog post. No fallback text provided.")
		assert.Contains(t, stderr, "error: Unable to extract content from the blog. Please paste a summary manually.")
	})

	t.Run("writes result files", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		m := &main.Main{Resolver: bodyResolver()}

		_, stderr, err := run(t, m, "generate", "https://example.com/post", "--out", out)

		require.NoError(t, err)
		assert.Contains(t, stderr, "Wrote "+out)
		for _, name := range []string{"result.json", "summary.md", "x.txt", "linkedin.txt", "facebook.txt", "instagram.txt"} {
			_, err := os.Stat(filepath.Join(out, name))
			assert.NoError(t, err, name)
		}
	})
}

func TestBatchCmd(t *testing.T) {
	t.Parallel()

	t.Run("generates posts for urls and file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		list := filepath.Join(dir, "urls.txt")
		require.NoError(t, os.WriteFile(list, []byte("# posts\nhttps://example.com/blog/b\nhttps://example.com/blog/a\n"), 0644))
		out := filepath.Join(dir, "out")

		m := &main.Main{Resolver: bodyResolver()}
		stdout, stderr, err := run(t, m, "batch", "https://example.com/blog/a", "-f", list, "--out", out)

		require.NoError(t, err)
		assert.Contains(t, stderr, "Processing 2 posts")
		assert.Contains(t, stdout, "Generated 2 of 2 posts into "+out)
		_, err = os.Stat(filepath.Join(out, "example.com", "blog", "a", "result.json"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(out, "example.com", "blog", "b", "x.txt"))
		assert.NoError(t, err)
	})

	t.Run("json report with failures", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.Resolver{
			ResolveFn: func(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
				if strings.HasSuffix(req.URL, "/gone") {
					return nil, postcraft.Errorf(postcraft.EFETCH, "Unable to extract content from the blog. Please paste a summary manually.")
				}
				return bodyResolver().Resolve(ctx, req)
			},
		}
		m := &main.Main{Resolver: resolver}

		stdout, _, err := run(t, m, "batch", "https://example.com/ok", "https://example.com/gone", "--out", t.TempDir(), "--format", "json")

		require.NoError(t, err)
		var report []struct {
			URL    string `json:"url"`
			Dir    string `json:"dir"`
			Error  string `json:"error"`
			Result *struct {
				Title string `json:"title"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &report))
		require.Len(t, report, 2)
		assert.Equal(t, "https://example.com/ok", report[0].URL)
		assert.NotEmpty(t, report[0].Dir)
		require.NotNil(t, report[0].Result)
		assert.Equal(t, "AI helps teams ship faster", report[0].Result.Title)
		assert.Equal(t, "Unable to extract content from the blog. Please paste a summary manually.", report[1].Error)
		assert.Nil(t, report[1].Result)
	})

	t.Run("discovers urls from sitemap", func(t *testing.T) {
		t.Parallel()

		var gotFilter *postcraft.URLFilter
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *postcraft.URLFilter) ([]string, error) {
				gotFilter = filter
				return []string{"https://example.com/blog/new", "https://example.com/blog/mid", "https://example.com/blog/old"}, nil
			},
		}
		m := &main.Main{Resolver: bodyResolver(), Sitemaps: sitemaps}

		stdout, _, err := run(t, m, "batch", "--sitemap", "https://example.com/blog/", "-n", "2", "-I", "/blog/", "--out", t.TempDir())

		require.NoError(t, err)
		assert.Contains(t, stdout, "Generated 2 of 2 posts")
		assert.Contains(t, stdout, "https://example.com/blog/new")
		assert.NotContains(t, stdout, "https://example.com/blog/old")
		require.NotNil(t, gotFilter)
		assert.True(t, gotFilter.Match("https://example.com/blog/x"))
	})

	t.Run("no urls", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{Resolver: bodyResolver()}
		_, _, err := run(t, m, "batch", "--out", t.TempDir())

		assert.ErrorIs(t, err, main.ErrNoURLs)
	})

	t.Run("all failed", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.Resolver{
			ResolveFn: func(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
				return nil, postcraft.Errorf(postcraft.EFETCH, "nope")
			},
		}
		m := &main.Main{Resolver: resolver}

		stdout, _, err := run(t, m, "batch", "https://example.com/a", "--out", t.TempDir())

		require.Error(t, err)
		assert.Contains(t, stdout, "failed")
	})
}

func TestPlatformsCmd(t *testing.T) {
	t.Parallel()

	t.Run("text table", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, &main.Main{}, "platforms")

		require.NoError(t, err)
		assert.Equal(t, ""+
			"NAME       LABEL      MAX CHARS  LINK         HASHTAGS\n"+
			"x          X          280        yes          3\n"+
			"linkedin   LinkedIn   3000       yes          5\n"+
			"facebook   Facebook   2200       yes          3\n"+
			"instagram  Instagram  2200       link in bio  8\n", stdout)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, &main.Main{}, "platforms", "-o", "json")

		require.NoError(t, err)
		var got []postcraft.Platform
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, postcraft.DefaultPlatforms(), got)
	})
}

func TestCacheCmd(t *testing.T) {
	t.Parallel()

	t.Run("list and prune an empty cache", func(t *testing.T) {
		t.Parallel()

		vars := map[string]string{"POSTCRAFT_CACHE": filepath.Join(t.TempDir(), "nested", "cache.db")}

		stdout, _, err := run(t, &main.Main{Getenv: env(vars)}, "cache", "list")
		require.NoError(t, err)
		assert.Equal(t, "No cached articles.\n", stdout)

		stdout, _, err = run(t, &main.Main{Getenv: env(vars)}, "cache", "prune")
		require.NoError(t, err)
		assert.Equal(t, "Deleted 0 expired articles\n", stdout)
	})

	t.Run("requires sqlite backend", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, &main.Main{}, "cache", "list")

		require.Error(t, err)
		assert.Contains(t, stderr, "sqlite cache backend")
	})
}
