package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/article"
	"github.com/fwojciec/postcraft/compose"
	"github.com/fwojciec/postcraft/generate"
	"github.com/fwojciec/postcraft/goquery"
	pchttp "github.com/fwojciec/postcraft/http"
	"github.com/fwojciec/postcraft/readability"
	"github.com/fwojciec/postcraft/redis"
	"github.com/fwojciec/postcraft/rod"
	pcslog "github.com/fwojciec/postcraft/slog"
	"github.com/fwojciec/postcraft/sqlite"
	"github.com/fwojciec/postcraft/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if cerr := m.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Set before calling Run().
	Getenv func(string) string
	Stdin  io.Reader

	// SQLite database backing the article cache, if any.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil fields are built from config.
	Resolver  postcraft.Resolver
	Generator postcraft.Generator
	Sitemaps  postcraft.SitemapService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv, Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && first == nil {
			first = err
		}
		m.DB = nil
	}
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("postcraft"),
		kong.Description("Turn blog posts into ready-to-copy social media posts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := fmt.Errorf("no command specified. Run 'postcraft --help' to see available commands")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = m.Getenv("POSTCRAFT_CONFIG")
	}
	cfg, err := LoadConfig(configPath, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	deps.Config = cfg
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	composer, err := compose.NewComposer(cfg.Compose)
	if err != nil {
		fmt.Fprintf(stderr, "error: config: %s\n", postcraft.ErrorMessage(err))
		return err
	}
	deps.Platforms = composer.Platforms()

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "generate", "batch", "serve":
		if err := m.wire(ctx, deps, cmd == "batch"); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return err
		}
	case "cache":
		if cfg.Cache.Backend != CacheSQLite {
			err := fmt.Errorf("cache commands need the sqlite cache backend, got %q", cfg.Cache.Backend)
			fmt.Fprintf(stderr, "error: %v\n", err)
			return err
		}
		if err := m.openSQLite(cfg.Cache.Path); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return err
		}
		deps.Cache = sqlite.NewArticleCache(m.DB, cfg.Cache.TTL)
	}

	return kongCtx.Run(deps)
}

// wire builds the services needed to fetch and generate.
func (m *Main) wire(ctx context.Context, deps *Dependencies, sitemaps bool) error {
	cfg, logger := deps.Config, deps.Logger

	deps.Generator = m.Generator
	if deps.Generator == nil {
		opts, err := cfg.GeneratorOptions()
		if err != nil {
			return fmt.Errorf("config: %s", postcraft.ErrorMessage(err))
		}
		deps.Generator = pcslog.NewLoggingGenerator(generate.NewGenerator(opts...), logger)
	}

	deps.Resolver = m.Resolver
	if deps.Resolver == nil {
		fetcher, err := m.newFetcher(cfg.Fetch)
		if err != nil {
			return err
		}
		var renderer postcraft.Fetcher
		if cfg.Fetch.RenderFallback && !cfg.Fetch.Browser {
			if renderer, err = m.newRenderer(cfg.Fetch); err != nil {
				return err
			}
			renderer = pcslog.NewLoggingFetcher(renderer, logger)
		}
		cache, err := m.openCache(ctx, cfg.Cache)
		if err != nil {
			return err
		}

		articles := &article.Fetcher{
			Fetcher:  pcslog.NewLoggingFetcher(fetcher, logger),
			Renderer: renderer,
			Extractors: []postcraft.Extractor{
				trafilatura.NewExtractor(),
				readability.NewExtractor(),
				goquery.NewExtractor(),
			},
			Converter:       goquery.NewTextConverter(),
			Cache:           cache,
			RateLimiter:     article.NewDomainLimiter(cfg.Fetch.RequestsPerSecond, 1),
			MaxContentChars: cfg.Fetch.MaxContentChars,
			Logger:          logger,
		}
		resolver := article.NewResolver(pcslog.NewLoggingArticleFetcher(articles, logger))
		resolver.Logger = logger
		deps.Resolver = pcslog.NewLoggingResolver(resolver, logger)
	}

	if sitemaps {
		deps.Sitemaps = m.Sitemaps
		if deps.Sitemaps == nil {
			deps.Sitemaps = pcslog.NewLoggingSitemapService(pchttp.NewSitemapService(nil), logger)
		}
	}
	return nil
}

func (m *Main) newFetcher(cfg FetchConfig) (postcraft.Fetcher, error) {
	if cfg.Browser {
		return m.newRenderer(cfg)
	}
	opts := []pchttp.Option{pchttp.WithUserAgent(userAgent(cfg))}
	if cfg.Timeout > 0 {
		opts = append(opts, pchttp.WithTimeout(cfg.Timeout))
	}
	fetcher := pchttp.NewFetcher(opts...)
	m.closers = append(m.closers, fetcher)
	return fetcher, nil
}

// newRenderer starts headless Chrome and returns a fetcher backed by it.
func (m *Main) newRenderer(cfg FetchConfig) (postcraft.Fetcher, error) {
	manager, err := rod.NewBrowserManager()
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	opts := []rod.Option{rod.WithUserAgent(userAgent(cfg))}
	if cfg.Timeout > 0 {
		opts = append(opts, rod.WithPageTimeout(cfg.Timeout))
	}
	fetcher := rod.NewFetcher(manager, opts...)
	m.closers = append(m.closers, fetcher)
	return fetcher, nil
}

func userAgent(cfg FetchConfig) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return pchttp.DefaultUserAgent
}

// openCache returns the configured article cache, or nil when caching is off.
func (m *Main) openCache(ctx context.Context, cfg CacheConfig) (postcraft.ArticleCache, error) {
	switch cfg.Backend {
	case CacheSQLite:
		if err := m.openSQLite(cfg.Path); err != nil {
			return nil, err
		}
		return sqlite.NewArticleCache(m.DB, cfg.TTL), nil
	case CacheRedis:
		cache, err := redis.Open(ctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		m.closers = append(m.closers, cache)
		return cache, nil
	}
	return nil, nil
}

func (m *Main) openSQLite(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open cache at %q (set POSTCRAFT_CACHE to use a different path): %w", path, err)
	}
	return nil
}
