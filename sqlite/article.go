package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ postcraft.ArticleCache = (*ArticleCache)(nil)

// DefaultTTL is how long a cached article is served before it is refetched.
const DefaultTTL = 24 * time.Hour

// ArticleCache implements postcraft.ArticleCache using SQLite.
type ArticleCache struct {
	db  *DB
	ttl time.Duration

	// Now returns the current time. Tests override it.
	Now func() time.Time
}

// NewArticleCache creates an ArticleCache. A non-positive ttl means entries
// never expire.
func NewArticleCache(db *DB, ttl time.Duration) *ArticleCache {
	return &ArticleCache{db: db, ttl: ttl, Now: time.Now}
}

// CachedArticle is a cache entry with its bookkeeping fields.
type CachedArticle struct {
	ID          string
	ContentHash string
	postcraft.Article
}

// ArticleFilter pages through ListArticles.
type ArticleFilter struct {
	Limit  int
	Offset int
}

// FindArticle returns the cached article for url.
// Returns ENOTFOUND if there is no entry or it is older than the TTL.
func (c *ArticleCache) FindArticle(ctx context.Context, url string) (*postcraft.Article, error) {
	rows, err := c.query(ctx, "WHERE url = ?", []any{url}, ArticleFilter{})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, postcraft.Errorf(postcraft.ENOTFOUND, "article not cached")
	}
	a := &rows[0].Article
	if c.expired(a.FetchedAt) {
		return nil, postcraft.Errorf(postcraft.ENOTFOUND, "cached article expired")
	}
	return a, nil
}

// SaveArticle stores the article, replacing any entry for the same URL.
// The entry keeps its ID across replacements.
func (c *ArticleCache) SaveArticle(ctx context.Context, a *postcraft.Article) error {
	if a.URL == "" {
		return postcraft.Errorf(postcraft.EINVALID, "article URL required")
	}
	if a.Content == "" {
		return postcraft.Errorf(postcraft.EINVALID, "article content required")
	}
	if a.FetchedAt.IsZero() {
		a.FetchedAt = c.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, author, description, published_at, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			description = excluded.description,
			published_at = excluded.published_at,
			content = excluded.content,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), a.URL, a.Title, a.Author, a.Description, formatRFC3339(a.Published),
		a.Content, hashContent(a.Content), formatRFC3339(a.FetchedAt))
	return err
}

// ListArticles returns cached articles, most recently fetched first.
func (c *ArticleCache) ListArticles(ctx context.Context, filter ArticleFilter) ([]CachedArticle, error) {
	return c.query(ctx, "", nil, filter)
}

// DeleteExpired removes entries older than the TTL and reports how many
// were removed. It is a no-op when entries never expire.
func (c *ArticleCache) DeleteExpired(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := formatRFC3339(c.Now().Add(-c.ttl))
	res, err := c.db.ExecContext(ctx, `DELETE FROM articles WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *ArticleCache) expired(fetchedAt time.Time) bool {
	return c.ttl > 0 && c.Now().Sub(fetchedAt) > c.ttl
}

func (c *ArticleCache) query(ctx context.Context, where string, args []any, filter ArticleFilter) ([]CachedArticle, error) {
	var q strings.Builder
	q.WriteString(`
		SELECT id, url, title, author, description, published_at, content, content_hash, fetched_at
		FROM articles `)
	q.WriteString(where)
	q.WriteString(" ORDER BY fetched_at DESC, url")
	appendPagination(&q, &args, filter.Limit, filter.Offset)

	rows, err := c.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CachedArticle
	for rows.Next() {
		var e CachedArticle
		var published, fetched string
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &e.Author, &e.Description, &published,
			&e.Content, &e.ContentHash, &fetched); err != nil {
			return nil, err
		}
		if e.Published, err = parseRFC3339(published, "published_at"); err != nil {
			return nil, err
		}
		if e.FetchedAt, err = parseRFC3339(fetched, "fetched_at"); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return out, nil
}
