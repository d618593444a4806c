package mock

import (
	"context"

	"github.com/fwojciec/postcraft"
)

var _ postcraft.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of postcraft.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *postcraft.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *postcraft.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
