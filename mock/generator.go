package mock

import "github.com/fwojciec/postcraft"

var _ postcraft.Generator = (*Generator)(nil)

// Generator is a mock implementation of postcraft.Generator.
type Generator struct {
	GenerateFn func(in *postcraft.ArticleInput) (*postcraft.GenerationResult, error)
}

func (g *Generator) Generate(in *postcraft.ArticleInput) (*postcraft.GenerationResult, error) {
	return g.GenerateFn(in)
}
