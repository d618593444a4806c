package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/fs"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	req := c.request()
	req.URL = c.URL
	req.FallbackTitle = c.Title
	req.Content = c.Content

	if c.ContentFile != "" {
		text, err := readContent(c.ContentFile, deps.Stdin)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		req.Content = text
	}

	res, err := deps.Resolver.Resolve(deps.Ctx, &req)
	if res != nil {
		printWarnings(deps.Stderr, res.Warnings)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcraft.ErrorMessage(err))
		return err
	}

	result, err := deps.Generator.Generate(res.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcraft.ErrorMessage(err))
		return err
	}

	if len(c.Platform) > 0 {
		posts, err := selectPosts(result.Posts, c.Platform)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postcraft.ErrorMessage(err))
			return err
		}
		result.Posts = posts
	}

	if c.Out != "" {
		dir, err := fs.NewWriter(c.Out).WriteResult(deps.Ctx, result)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %s\n", dir)
	}

	return writeResult(deps.Stdout, c.Format, result, res.Warnings)
}

// selectPosts keeps the posts for the named platforms, in generation order.
func selectPosts(posts []postcraft.SocialPost, names []string) ([]postcraft.SocialPost, error) {
	for _, name := range names {
		if !slices.ContainsFunc(posts, func(p postcraft.SocialPost) bool { return p.Platform == name }) {
			return nil, postcraft.Errorf(postcraft.EINVALID, "Unknown platform %q.", name)
		}
	}
	var out []postcraft.SocialPost
	for _, p := range posts {
		if slices.Contains(names, p.Platform) {
			out = append(out, p)
		}
	}
	return out, nil
}

func readContent(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", strings.TrimSpace(warning))
	}
}
