// Package fs writes generation results to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/postcraft"
	"gopkg.in/yaml.v3"
)

// Output file names.
const (
	ResultFile  = "result.json"
	SummaryFile = "summary.md"
)

const maxSlugChars = 60

// Ensure Writer implements postcraft.ResultWriter at compile time.
var _ postcraft.ResultWriter = (*Writer)(nil)

// Writer writes a result as result.json, summary.md and one <platform>.txt
// per post. Every file is written to a temporary name first and renamed into
// place, so readers never observe a partial file.
type Writer struct {
	baseDir string
	urlDirs bool
	now     func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithURLDirs writes every result into its own subdirectory named after the
// post URL (or title), e.g. example.com/blog/launch-week.
func WithURLDirs() Option {
	return func(w *Writer) {
		w.urlDirs = true
	}
}

// WithNow sets the clock used for the generated date in summary.md.
func WithNow(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a new Writer rooted at baseDir.
func NewWriter(baseDir string, opts ...Option) *Writer {
	w := &Writer{baseDir: baseDir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteResult implements postcraft.ResultWriter and returns the directory the
// files were written to.
func (w *Writer) WriteResult(ctx context.Context, res *postcraft.GenerationResult) (string, error) {
	if res == nil {
		return "", postcraft.Errorf(postcraft.EINVALID, "result required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := w.baseDir
	if w.urlDirs {
		dir = filepath.Join(dir, ResultDir(res))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	if err := writeFile(filepath.Join(dir, ResultFile), append(data, '\n')); err != nil {
		return "", err
	}

	summary, err := FormatSummary(res, w.now())
	if err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(dir, SummaryFile), []byte(summary)); err != nil {
		return "", err
	}

	for _, p := range res.Posts {
		if err := writeFile(filepath.Join(dir, Slug(p.Platform)+".txt"), []byte(p.Copy+"\n")); err != nil {
			return "", err
		}
	}
	return dir, nil
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url,omitempty"`
	ReadingTime string   `yaml:"readingTime"`
	Keywords    []string `yaml:"keywords,flow"`
	Hashtags    []string `yaml:"hashtags,flow"`
	Generated   string   `yaml:"generated"`
}

// FormatSummary renders res as Markdown with YAML front matter.
func FormatSummary(res *postcraft.GenerationResult, generated time.Time) (string, error) {
	fm, err := yaml.Marshal(frontMatter{
		Title:       res.Title,
		URL:         res.URL,
		ReadingTime: res.EstimatedReadingTime,
		Keywords:    res.Keywords,
		Hashtags:    res.Hashtags,
		Generated:   generated.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n# ")
	b.WriteString(res.Title)
	b.WriteString("\n\n")
	if res.Summary != "" {
		b.WriteString(res.Summary)
		b.WriteString("\n\n")
	}
	for _, p := range res.Posts {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", p.Label, p.Copy)
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// ResultDir returns the relative directory for res: host and path of its
// URL, or a slug of its title when there is no URL.
func ResultDir(res *postcraft.GenerationResult) string {
	if res.URL != "" {
		if dir, err := URLToDir(res.URL); err == nil {
			return dir
		}
	}
	return Slug(res.Title)
}

// URLToDir converts a post URL to a relative directory path.
// Example: https://example.com/blog/launch-week/ → example.com/blog/launch-week
func URLToDir(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", postcraft.Errorf(postcraft.EINVALID, "URL %q has no host", rawURL)
	}

	parts := []string{Slug(u.Hostname())}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, Slug(seg))
	}
	return filepath.Join(parts...), nil
}

// Slug lowercases s and replaces every run of characters other than ASCII
// letters, digits, '.' and '_' with a single '-'. Returns "untitled" if
// nothing remains.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
		if b.Len() >= maxSlugChars {
			break
		}
	}
	slug := strings.Trim(b.String(), ".-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
