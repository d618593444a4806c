package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/postcraft"
)

// Ensure LoggingGenerator implements postcraft.Generator.
var _ postcraft.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   postcraft.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next postcraft.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the outcome.
func (g *LoggingGenerator) Generate(in *postcraft.ArticleInput) (res *postcraft.GenerationResult, err error) {
	defer func(begin time.Time) {
		var posts, hashtags int
		if res != nil {
			posts, hashtags = len(res.Posts), len(res.Hashtags)
		}
		g.logger.Info("generate",
			"tone", in.Tone,
			"cta", in.CallToAction,
			"posts", posts,
			"hashtags", hashtags,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(in)
}
