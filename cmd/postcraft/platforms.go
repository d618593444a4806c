package main

import (
	"strconv"
)

// Run executes the platforms command.
func (c *PlatformsCmd) Run(deps *Dependencies) error {
	if c.Format == "json" {
		return writeJSON(deps.Stdout, deps.Platforms)
	}

	rows := make([][]string, 0, len(deps.Platforms))
	for _, p := range deps.Platforms {
		link := "no"
		switch {
		case p.IncludeLink:
			link = "yes"
		case p.LinkFallback != "":
			link = p.LinkFallback
		}
		rows = append(rows, []string{
			p.Name,
			p.Label,
			strconv.Itoa(p.MaxChars),
			link,
			strconv.Itoa(p.MaxHashtags),
		})
	}
	return writeTable(deps.Stdout, []string{"NAME", "LABEL", "MAX CHARS", "LINK", "HASHTAGS"}, rows)
}
