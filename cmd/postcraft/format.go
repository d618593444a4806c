package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/fwojciec/postcraft/fs"
	"github.com/mattn/go-runewidth"
)

// ruleWidth is the display width of post separators in text output.
const ruleWidth = 60

type resultJSON struct {
	*postcraft.GenerationResult
	Warnings []string `json:"warnings"`
}

func writeResult(w io.Writer, format string, res *postcraft.GenerationResult, warnings []string) error {
	switch format {
	case "json":
		if warnings == nil {
			warnings = []string{}
		}
		return writeJSON(w, resultJSON{GenerationResult: res, Warnings: warnings})
	case "markdown":
		md, err := fs.FormatSummary(res, time.Now())
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	}
	_, err := io.WriteString(w, FormatText(res))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// FormatText renders a result for reading in a terminal.
func FormatText(res *postcraft.GenerationResult) string {
	var b strings.Builder
	b.WriteString(res.Title)
	b.WriteString("\n")
	meta := res.EstimatedReadingTime
	if res.URL != "" {
		meta = res.URL + " · " + meta
	}
	b.WriteString(meta)
	b.WriteString("\n\n")
	if res.Summary != "" {
		b.WriteString(res.Summary)
		b.WriteString("\n\n")
	}
	if len(res.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(res.Keywords, ", "))
	}
	if len(res.Hashtags) > 0 {
		fmt.Fprintf(&b, "Hashtags: %s\n", strings.Join(res.Hashtags, " "))
	}
	for _, p := range res.Posts {
		b.WriteString("\n")
		b.WriteString(rule(p.Label, fmt.Sprintf("%d chars", postcraft.RuneCount(p.Copy))))
		b.WriteString("\n")
		b.WriteString(p.Copy)
		b.WriteString("\n")
	}
	return b.String()
}

// rule returns a separator line such as "── X ────── 42 chars ──" that is
// ruleWidth columns wide, or wider if the label does not fit.
func rule(label, note string) string {
	left := "── " + label + " "
	right := " " + note + " ──"
	fill := max(ruleWidth-runewidth.StringWidth(left)-runewidth.StringWidth(right), 3)
	return left + strings.Repeat("─", fill) + right
}

// writeTable writes rows as left-aligned columns separated by two spaces.
// Widths are measured in terminal columns, so wide characters line up.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, row := range append([][]string{header}, rows...) {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
