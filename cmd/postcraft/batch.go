package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/batch"
	"github.com/fwojciec/postcraft/fs"
)

// ErrNoURLs is returned when a batch has nothing to process.
var ErrNoURLs = errors.New("no URLs given: pass URLs, --file or --sitemap")

type batchItemJSON struct {
	URL      string                      `json:"url"`
	Dir      string                      `json:"dir,omitempty"`
	Result   *postcraft.GenerationResult `json:"result,omitempty"`
	Warnings []string                    `json:"warnings,omitempty"`
	Error    string                      `json:"error,omitempty"`
}

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcraft.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %v\n", ErrNoURLs)
		return ErrNoURLs
	}

	runner := &batch.Runner{
		Resolver:    deps.Resolver,
		Generator:   deps.Generator,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}
	template := c.request()

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "  Processing %d posts\n", event.Total)
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", event.Completed, event.Total, batch.TruncateURL(event.URL, 60))
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %s\n", event.Completed, event.Total, batch.TruncateURL(event.URL, 60), postcraft.ErrorMessage(event.Error))
		}
	}

	items := runner.Run(deps.Ctx, urls, &template, progress)

	writer := fs.NewWriter(c.Out, fs.WithURLDirs())
	report := make([]batchItemJSON, len(items))
	for i, it := range items {
		report[i] = batchItemJSON{URL: it.URL, Result: it.Result, Warnings: it.Warnings}
		if it.Err != nil {
			report[i].Error = postcraft.ErrorMessage(it.Err)
			continue
		}
		dir, err := writer.WriteResult(deps.Ctx, it.Result)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		report[i].Dir = dir
	}

	failed := batch.Failed(items)
	if c.Format == "json" {
		if err := writeJSON(deps.Stdout, report); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(report))
		for i, r := range report {
			status, detail := "ok", r.Dir
			if r.Error != "" {
				status, detail = "failed", r.Error
			}
			rows[i] = []string{status, batch.TruncateURL(r.URL, 60), detail}
		}
		if err := writeTable(deps.Stdout, []string{"STATUS", "URL", "OUTPUT"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nGenerated %d of %d posts into %s\n", len(items)-failed, len(items), c.Out)
	}

	if failed == len(items) {
		return fmt.Errorf("all %d posts failed", failed)
	}
	return nil
}

// collectURLs merges positional URLs, the URL file and the sitemap.
func (c *BatchCmd) collectURLs(deps *Dependencies) ([]string, error) {
	urls := append([]string{}, c.URLs...)

	if c.File != "" {
		f := deps.Stdin
		if c.File != "-" {
			file, err := os.Open(c.File)
			if err != nil {
				return nil, fmt.Errorf("open url file: %w", err)
			}
			defer file.Close()
			f = file
		}
		fromFile, err := batch.ReadURLs(f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}

	if c.Sitemap != "" {
		filter, err := postcraft.NewURLFilter(c.Include, c.Exclude)
		if err != nil {
			return nil, err
		}
		discovered, err := batch.Discover(deps.Ctx, deps.Sitemaps, c.Sitemap, filter, c.Limit)
		if err != nil {
			return nil, err
		}
		urls = append(urls, discovered...)
	}
	return batch.Unique(urls), nil
}
