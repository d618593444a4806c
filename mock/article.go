package mock

import (
	"context"

	"github.com/fwojciec/postcraft"
)

var _ postcraft.ArticleFetcher = (*ArticleFetcher)(nil)

// ArticleFetcher is a mock implementation of postcraft.ArticleFetcher.
type ArticleFetcher struct {
	FetchArticleFn func(ctx context.Context, url string) (*postcraft.Article, error)
}

func (f *ArticleFetcher) FetchArticle(ctx context.Context, url string) (*postcraft.Article, error) {
	return f.FetchArticleFn(ctx, url)
}

var _ postcraft.ArticleCache = (*ArticleCache)(nil)

// ArticleCache is a mock implementation of postcraft.ArticleCache.
type ArticleCache struct {
	FindArticleFn func(ctx context.Context, url string) (*postcraft.Article, error)
	SaveArticleFn func(ctx context.Context, article *postcraft.Article) error
}

func (c *ArticleCache) FindArticle(ctx context.Context, url string) (*postcraft.Article, error) {
	return c.FindArticleFn(ctx, url)
}

func (c *ArticleCache) SaveArticle(ctx context.Context, article *postcraft.Article) error {
	return c.SaveArticleFn(ctx, article)
}

var _ postcraft.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of postcraft.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error)
}

func (r *Resolver) Resolve(ctx context.Context, req *postcraft.GenerateRequest) (*postcraft.Resolution, error) {
	return r.ResolveFn(ctx, req)
}
