package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Logger    *slog.Logger
	Resolver  postcraft.Resolver
	Generator postcraft.Generator
	Sitemaps  postcraft.SitemapService
	Platforms []postcraft.Platform
	Cache     *sqlite.ArticleCache
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"c" type:"path" help:"YAML configuration file (default $POSTCRAFT_CONFIG)"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn or error"`

	Generate  GenerateCmd  `cmd:"" help:"Generate social posts for one blog post"`
	Batch     BatchCmd     `cmd:"" help:"Generate social posts for many blog posts"`
	Serve     ServeCmd     `cmd:"" help:"Serve the HTTP API"`
	Platforms PlatformsCmd `cmd:"" help:"List the configured platforms"`
	Cache     CacheCmd     `cmd:"" help:"Inspect the fetched-article cache"`
}

// VoiceFlags are the voice settings shared by generate and batch.
type VoiceFlags struct {
	Tone     string   `short:"t" default:"professional" enum:"professional,casual,enthusiastic,authoritative,playful" help:"Tone of voice"`
	CTA      string   `name:"cta" default:"readNow" enum:"readNow,learnMore,joinConversation,subscribe,contact" help:"Call to action"`
	Audience string   `short:"a" help:"Target audience, e.g. 'engineering leads'"`
	Hashtags []string `name:"hashtag" short:"H" help:"Custom hashtag (repeatable or comma separated)"`
}

func (v VoiceFlags) request() postcraft.GenerateRequest {
	return postcraft.GenerateRequest{
		Tone:         postcraft.Tone(v.Tone),
		CallToAction: postcraft.CallToAction(v.CTA),
		Audience:     v.Audience,
		Hashtags:     v.Hashtags,
	}
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	URL         string   `arg:"" optional:"" help:"Blog post URL"`
	Title       string   `help:"Title to use when the page has none or no URL is given"`
	Content     string   `help:"Post text to use when the page cannot be fetched"`
	ContentFile string   `name:"content-file" short:"f" help:"Read the post text from a file (- for stdin)"`
	Platform    []string `short:"p" help:"Only show these platforms (repeatable)"`
	Format      string   `short:"o" default:"text" enum:"text,json,markdown" help:"Output format: text, json or markdown"`
	Out         string   `type:"path" help:"Also write result files into this directory"`

	VoiceFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" help:"Blog post URLs"`
	File        string   `short:"f" help:"Read URLs from a file, one per line (- for stdin)"`
	Sitemap     string   `help:"Take the newest posts from this blog's sitemap"`
	Include     []string `short:"I" help:"Keep only sitemap URLs matching this regex (repeatable)"`
	Exclude     []string `short:"X" help:"Drop sitemap URLs matching this regex (repeatable)"`
	Limit       int      `short:"n" default:"10" help:"Maximum posts taken from the sitemap (0 for all)"`
	Concurrency int      `short:"j" default:"4" help:"Posts processed at once"`
	Out         string   `type:"path" default:"postcraft-out" help:"Directory for result files"`
	Format      string   `default:"text" enum:"text,json" help:"Report format: text or json"`

	VoiceFlags `embed:""`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (default from config, $POSTCRAFT_ADDR or :8080)"`
}

// PlatformsCmd is the "platforms" subcommand.
type PlatformsCmd struct {
	Format string `short:"o" default:"text" enum:"text,json" help:"Output format: text or json"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	List  CacheListCmd  `cmd:"" help:"List cached articles, newest first"`
	Prune CachePruneCmd `cmd:"" help:"Delete expired articles"`
}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	Limit  int `short:"n" default:"20" help:"Maximum articles to list"`
	Offset int `help:"Articles to skip"`
}

// CachePruneCmd is the "cache prune" subcommand.
type CachePruneCmd struct{}
