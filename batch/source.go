package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/postcraft"
)

// ReadURLs reads one URL per line. Blank lines and lines starting with '#'
// are skipped.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read urls: %w", err)
	}
	return urls, nil
}

// Discover lists the posts of a blog from its sitemap, newest first, keeping
// at most limit URLs (all of them if limit <= 0).
func Discover(ctx context.Context, sitemaps postcraft.SitemapService, blogURL string, filter *postcraft.URLFilter, limit int) ([]string, error) {
	urls, err := sitemaps.DiscoverURLs(ctx, blogURL, filter)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, postcraft.Errorf(postcraft.ENOTFOUND, "No posts found in the sitemap of %s.", blogURL)
	}
	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}
	return urls, nil
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(url)
	if len(runes) <= maxLen {
		return url
	}
	if maxLen < 2 {
		return string(runes[:maxLen])
	}
	return postcraft.Ellipsis + string(runes[len(runes)-maxLen+1:])
}
