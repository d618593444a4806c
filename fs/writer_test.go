package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testResult() *postcraft.GenerationResult {
	return &postcraft.GenerationResult{
		Title:                "Launch week: what we shipped",
		URL:                  "https://example.com/blog/launch-week/",
		Summary:              "We shipped five features.",
		Keywords:             []string{"launch", "features"},
		Hashtags:             []string{"#launch", "#features"},
		EstimatedReadingTime: "2 min read",
		Posts: []postcraft.SocialPost{
			{Platform: "x", Label: "X", Copy: "Launch week is here."},
			{Platform: "linkedin", Label: "LinkedIn", Copy: "Launch week.\n\nRead it now."},
		},
	}
}

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

func TestURLToDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "post path", url: "https://example.com/blog/launch-week", want: "example.com/blog/launch-week"},
		{name: "trailing slash", url: "https://example.com/blog/launch-week/", want: "example.com/blog/launch-week"},
		{name: "root", url: "https://example.com/", want: "example.com"},
		{name: "ignores query and fragment", url: "https://example.com/p?id=2#top", want: "example.com/p"},
		{name: "sanitizes segments", url: "https://Example.com/Blog/Hello%20World", want: "example.com/blog/hello-world"},
		{name: "drops dot segments", url: "https://example.com/../../etc", want: "example.com/etc"},
		{name: "no host", url: "/blog/post", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToDir(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "launch-week-what-we-shipped", fs.Slug("Launch week: what we shipped!"))
	assert.Equal(t, "linkedin", fs.Slug("linkedin"))
	assert.Equal(t, "untitled", fs.Slug("¿¡!"))
	assert.Len(t, fs.Slug(strings.Repeat("a", 100)), 60)
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	got, err := fs.FormatSummary(testResult(), fixedNow())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(got, "---\n"))
	rest := strings.TrimPrefix(got, "---\n")
	header, body, ok := strings.Cut(rest, "---\n")
	require.True(t, ok)

	var fm struct {
		Title       string   `yaml:"title"`
		URL         string   `yaml:"url"`
		ReadingTime string   `yaml:"readingTime"`
		Keywords    []string `yaml:"keywords"`
		Hashtags    []string `yaml:"hashtags"`
		Generated   string   `yaml:"generated"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(header), &fm))
	assert.Equal(t, "Launch week: what we shipped", fm.Title)
	assert.Equal(t, "https://example.com/blog/launch-week/", fm.URL)
	assert.Equal(t, "2 min read", fm.ReadingTime)
	assert.Equal(t, []string{"launch", "features"}, fm.Keywords)
	assert.Equal(t, []string{"#launch", "#features"}, fm.Hashtags)
	assert.Equal(t, "2026-03-14", fm.Generated)

	assert.Equal(t, "\n# Launch week: what we shipped\n\n"+
		"We shipped five features.\n\n"+
		"## X\n\nLaunch week is here.\n\n"+
		"## LinkedIn\n\nLaunch week.\n\nRead it now.\n", body)
}

func TestWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("writes result files", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir, fs.WithNow(fixedNow))

		dir, err := w.WriteResult(context.Background(), testResult())

		require.NoError(t, err)
		assert.Equal(t, baseDir, dir)

		data, err := os.ReadFile(filepath.Join(dir, fs.ResultFile))
		require.NoError(t, err)
		var got postcraft.GenerationResult
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, testResult(), &got)

		x, err := os.ReadFile(filepath.Join(dir, "x.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Launch week is here.\n", string(x))

		li, err := os.ReadFile(filepath.Join(dir, "linkedin.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Launch week.\n\nRead it now.\n", string(li))

		summary, err := os.ReadFile(filepath.Join(dir, fs.SummaryFile))
		require.NoError(t, err)
		assert.Contains(t, string(summary), "# Launch week: what we shipped")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
		}
	})

	t.Run("url directories", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir, fs.WithURLDirs(), fs.WithNow(fixedNow))

		dir, err := w.WriteResult(context.Background(), testResult())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(baseDir, "example.com", "blog", "launch-week"), dir)
		_, err = os.Stat(filepath.Join(dir, fs.ResultFile))
		require.NoError(t, err)
	})

	t.Run("title directory without url", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		res := testResult()
		res.URL = ""

		dir, err := fs.NewWriter(baseDir, fs.WithURLDirs()).WriteResult(context.Background(), res)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(baseDir, "launch-week-what-we-shipped"), dir)
	})

	t.Run("overwrites previous output", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)
		_, err := w.WriteResult(context.Background(), testResult())
		require.NoError(t, err)

		res := testResult()
		res.Posts[0].Copy = "Updated."
		_, err = w.WriteResult(context.Background(), res)
		require.NoError(t, err)

		x, err := os.ReadFile(filepath.Join(baseDir, "x.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Updated.\n", string(x))
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewWriter(t.TempDir()).WriteResult(context.Background(), nil)

		assert.Equal(t, postcraft.EINVALID, postcraft.ErrorCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewWriter(t.TempDir()).WriteResult(ctx, testResult())

		assert.ErrorIs(t, err, context.Canceled)
	})
}
