package postcraft

import "context"

// Keyword is a salient term from the body with its relevance score.
type Keyword struct {
	Term  string `json:"term"`
	Score int    `json:"score"`
}

// SocialPost is ready-to-copy text for one platform.
type SocialPost struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	Copy     string `json:"copy"`
}

// GenerationResult is the output of the generation pipeline.
type GenerationResult struct {
	Title                string       `json:"title"`
	URL                  string       `json:"url,omitempty"`
	Summary              string       `json:"summary"`
	Keywords             []string     `json:"keywords"`
	Hashtags             []string     `json:"hashtags"`
	EstimatedReadingTime string       `json:"estimatedReadingTime"`
	Posts                []SocialPost `json:"posts"`
}

// Post returns the post generated for the named platform, or nil.
func (r *GenerationResult) Post(platform string) *SocialPost {
	for i := range r.Posts {
		if r.Posts[i].Platform == platform {
			return &r.Posts[i]
		}
	}
	return nil
}

// Generator runs the generation pipeline.
type Generator interface {
	// Generate returns EEMPTY if the body is empty after normalization.
	// Every other irregularity degrades the output instead of failing.
	Generate(in *ArticleInput) (*GenerationResult, error)
}

// ResultWriter persists generation results.
type ResultWriter interface {
	// WriteResult stores res and returns the location it was written to.
	WriteResult(ctx context.Context, res *GenerationResult) (string, error)
}
