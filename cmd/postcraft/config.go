package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/article"
	"github.com/fwojciec/postcraft/compose"
	"github.com/fwojciec/postcraft/generate"
	"github.com/fwojciec/postcraft/sqlite"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
)

// Config validation errors.
var (
	ErrUnknownCache    = errors.New("cache backend must be one of none, sqlite, redis")
	ErrRedisURL        = errors.New("redis cache requires a redis URL")
	ErrUnknownLogLevel = errors.New("log level must be one of debug, info, warn, error")
	ErrNegativeBudget  = errors.New("generator budgets must not be negative")
	ErrRequestRate     = errors.New("requests per second must not be negative")
)

// Config is the contents of the YAML configuration file.
type Config struct {
	LogLevel  string          `yaml:"logLevel"`
	Generator GeneratorConfig `yaml:"generator"`
	Compose   compose.Config  `yaml:"compose"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
}

// GeneratorConfig holds pipeline budgets. Zero values mean the defaults.
type GeneratorConfig struct {
	MaxKeywords      int      `yaml:"maxKeywords"`
	StopWords        []string `yaml:"stopWords"`
	SummarySentences int      `yaml:"summarySentences"`
	SummaryMaxChars  int      `yaml:"summaryMaxChars"`
	WordsPerMinute   int      `yaml:"wordsPerMinute"`
	HashtagLimit     int      `yaml:"hashtagLimit"`
}

// FetchConfig controls article retrieval.
type FetchConfig struct {
	// Browser renders pages in headless Chrome instead of plain HTTP.
	Browser bool `yaml:"browser"`
	// RenderFallback re-fetches thin plain HTTP pages in headless Chrome.
	RenderFallback    bool          `yaml:"renderFallback"`
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"userAgent"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	MaxContentChars   int           `yaml:"maxContentChars"`
}

// CacheConfig selects where fetched articles are cached.
type CacheConfig struct {
	Backend  string        `yaml:"backend"`
	Path     string        `yaml:"path"`
	RedisURL string        `yaml:"redisURL"`
	TTL      time.Duration `yaml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Fetch: FetchConfig{
			RequestsPerSecond: article.DefaultRequestsPerSecond,
			MaxContentChars:   article.DefaultMaxContentChars,
		},
		Cache: CacheConfig{
			Backend: CacheSQLite,
			Path:    defaultCachePath(),
			TTL:     sqlite.DefaultTTL,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the YAML file at path over the defaults and applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file settings with POSTCRAFT_CACHE (SQLite path, or
// "none" to disable caching), REDIS_URL, POSTCRAFT_ADDR and FRONTEND_URL.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("POSTCRAFT_CACHE"); v != "" {
		if v == CacheNone {
			c.Cache.Backend = CacheNone
		} else {
			c.Cache.Backend = CacheSQLite
			c.Cache.Path = v
		}
	}
	if v := getenv("REDIS_URL"); v != "" {
		c.Cache.Backend = CacheRedis
		c.Cache.RedisURL = v
	}
	if v := getenv("POSTCRAFT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("FRONTEND_URL"); v != "" {
		c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, v)
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheNone, CacheSQLite:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return ErrRedisURL
		}
	default:
		return ErrUnknownCache
	}
	g := c.Generator
	for _, n := range []int{g.MaxKeywords, g.SummarySentences, g.SummaryMaxChars, g.WordsPerMinute, g.HashtagLimit} {
		if n < 0 {
			return ErrNegativeBudget
		}
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return ErrRequestRate
	}
	return nil
}

// GeneratorOptions converts the configuration into generator options.
func (c *Config) GeneratorOptions() ([]generate.Option, error) {
	composer, err := compose.NewComposer(c.Compose)
	if err != nil {
		return nil, err
	}
	opts := []generate.Option{
		generate.WithComposer(composer),
		generate.WithSummary(postcraft.SummaryOptions{
			MaxSentences: c.Generator.SummarySentences,
			MaxChars:     c.Generator.SummaryMaxChars,
		}),
	}
	if c.Generator.MaxKeywords > 0 {
		opts = append(opts, generate.WithMaxKeywords(c.Generator.MaxKeywords))
	}
	if c.Generator.StopWords != nil {
		opts = append(opts, generate.WithStopWords(c.Generator.StopWords))
	}
	if c.Generator.WordsPerMinute > 0 {
		opts = append(opts, generate.WithWordsPerMinute(c.Generator.WordsPerMinute))
	}
	if c.Generator.HashtagLimit > 0 {
		opts = append(opts, generate.WithHashtagLimit(c.Generator.HashtagLimit))
	}
	return opts, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, ErrUnknownLogLevel
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "postcraft.db"
	}
	return filepath.Join(home, ".postcraft", "cache.db")
}
