package postcraft

import (
	"net/url"
	"strings"
)

// ParseURL parses an article URL. Only absolute http and https URLs are
// accepted; the fragment is dropped since it never changes the page.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, Errorf(EINVALID, "Please provide a valid URL.")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "Please provide a valid URL.")
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "Please provide a valid URL.")
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u, nil
}
