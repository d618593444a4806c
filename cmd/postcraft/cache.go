package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/sqlite"
)

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Cache.ListArticles(deps.Ctx, sqlite.ArticleFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcraft.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No cached articles.")
		return nil
	}

	rows := make([][]string, len(articles))
	for i, a := range articles {
		rows[i] = []string{
			a.FetchedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", postcraft.RuneCount(a.Content)),
			postcraft.TruncateWords(a.Title, 40),
			a.URL,
		}
	}
	return writeTable(deps.Stdout, []string{"FETCHED", "CHARS", "TITLE", "URL"}, rows)
}

// Run executes the cache prune command.
func (c *CachePruneCmd) Run(deps *Dependencies) error {
	n, err := deps.Cache.DeleteExpired(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcraft.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted %d expired articles\n", n)
	return nil
}
