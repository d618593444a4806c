// Package compose renders platform-specific social copy from a title,
// summary and hashtags, in a chosen tone and with a chosen call to action.
package compose

import (
	"strings"

	"github.com/fwojciec/postcraft"
)

// DefaultMinSummaryChars is the smallest room worth filling with a cut summary.
const DefaultMinSummaryChars = 20

// Config holds the tables a Composer renders from. Zero values fall back to
// the built-in defaults; voice and call-to-action entries are overlaid on
// top of the defaults.
type Config struct {
	Voices          map[postcraft.Tone]Voice          `yaml:"voices"`
	CallsToAction   map[postcraft.CallToAction]string `yaml:"callsToAction"`
	Platforms       []postcraft.Platform              `yaml:"platforms"`
	MinSummaryChars int                               `yaml:"minSummaryChars"`
}

// Draft is the material for one set of posts.
type Draft struct {
	Title        string
	Summary      string
	URL          string
	Audience     string
	Hashtags     []string
	Tone         postcraft.Tone
	CallToAction postcraft.CallToAction
}

// Composer renders posts. Its tables are fixed at construction, so a
// Composer is safe for concurrent use.
type Composer struct {
	voices     map[postcraft.Tone]Voice
	ctas       map[postcraft.CallToAction]string
	platforms  []postcraft.Platform
	minSummary int
}

// NewComposer validates cfg and returns a Composer using it.
// Returns EINVALID for unknown tones or calls to action, invalid platforms,
// or duplicate platform names.
func NewComposer(cfg Config) (*Composer, error) {
	voices := DefaultVoices()
	for tone, v := range cfg.Voices {
		if !tone.Valid() {
			return nil, postcraft.Errorf(postcraft.EINVALID, "voice for unknown tone %q", tone)
		}
		voices[tone] = voices[tone].overlay(v)
	}

	ctas := DefaultCallsToAction()
	for cta, phrase := range cfg.CallsToAction {
		if !cta.Valid() {
			return nil, postcraft.Errorf(postcraft.EINVALID, "phrase for unknown call to action %q", cta)
		}
		if phrase = strings.TrimSpace(phrase); phrase != "" {
			ctas[cta] = phrase
		}
	}

	platforms := cfg.Platforms
	if len(platforms) == 0 {
		platforms = postcraft.DefaultPlatforms()
	}
	seen := make(map[string]bool, len(platforms))
	for i := range platforms {
		if err := platforms[i].Validate(); err != nil {
			return nil, err
		}
		if seen[platforms[i].Name] {
			return nil, postcraft.Errorf(postcraft.EINVALID, "duplicate platform %q", platforms[i].Name)
		}
		seen[platforms[i].Name] = true
	}

	minSummary := cfg.MinSummaryChars
	if minSummary <= 0 {
		minSummary = DefaultMinSummaryChars
	}

	return &Composer{
		voices:     voices,
		ctas:       ctas,
		platforms:  append([]postcraft.Platform(nil), platforms...),
		minSummary: minSummary,
	}, nil
}

// MustNewComposer is like NewComposer but panics on an invalid config.
// Intended for the built-in defaults.
func MustNewComposer(cfg Config) *Composer {
	c, err := NewComposer(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Platforms returns the configured platforms in output order.
func (c *Composer) Platforms() []postcraft.Platform {
	return append([]postcraft.Platform(nil), c.platforms...)
}

// ComposeAll renders one post per configured platform, in order.
func (c *Composer) ComposeAll(d Draft) []postcraft.SocialPost {
	posts := make([]postcraft.SocialPost, 0, len(c.platforms))
	for _, p := range c.platforms {
		posts = append(posts, c.Compose(p, d))
	}
	return posts
}

// Compose renders the post for platform p. Sections appear in the order
// hook, summary, audience, call to action, hashtags. The call to action is
// never shortened; the summary absorbs most of the cutting and the hook is
// shortened only if it cannot fit beside the call to action. The copy never
// exceeds p.MaxChars.
func (c *Composer) Compose(p postcraft.Platform, d Draft) postcraft.SocialPost {
	voice := c.voice(d.Tone)
	sep := "\n\n"
	if p.Compact {
		sep = " "
	}
	sepLen := postcraft.RuneCount(sep)
	limit := p.MaxChars

	cta := c.callToAction(p, d.CallToAction, d.URL)
	used := postcraft.RuneCount(cta)

	hook := c.hook(voice, d.Title)
	if room := limit - used - sepLen; postcraft.RuneCount(hook) > room {
		hook = postcraft.TruncateWords(hook, room)
	}
	if hook != "" {
		used += sepLen + postcraft.RuneCount(hook)
	}

	var audience string
	if a := strings.TrimSpace(d.Audience); a != "" {
		line := fill(voice.Audience, "{audience}", a)
		if n := postcraft.RuneCount(line); used+sepLen+n <= limit {
			audience = line
			used += sepLen + n
		}
	}

	tags := fitHashtags(d.Hashtags, p.MaxHashtags, limit-used-sepLen)
	if tags != "" {
		used += sepLen + postcraft.RuneCount(tags)
	}

	var summary string
	if s := strings.TrimSpace(d.Summary); s != "" {
		bridged := fill(voice.Bridge, "{summary}", s)
		room := limit - used - sepLen
		switch {
		case postcraft.RuneCount(bridged) <= room:
			summary = bridged
		case room >= c.minSummary:
			summary = postcraft.TruncateWords(bridged, room)
		}
	}

	body := join(sep, hook, summary, audience, cta, tags)
	if !p.Fits(body) {
		body = postcraft.TruncateWords(body, limit)
	}

	return postcraft.SocialPost{
		Platform: p.Name,
		Label:    p.Label,
		Copy:     body,
	}
}

func (c *Composer) voice(t postcraft.Tone) Voice {
	if v, ok := c.voices[t]; ok {
		return v
	}
	return c.voices[postcraft.DefaultTone]
}

func (c *Composer) hook(v Voice, title string) string {
	title = strings.TrimRight(strings.TrimSpace(title), ",;: ")
	if title == "" {
		title = postcraft.DefaultTitle
	}
	hook := fill(v.Hook, "{title}", title)
	if !endsWithTerminal(hook) {
		hook += v.Mark
	}
	return hook
}

// callToAction renders the closing line. The URL is embedded only on
// platforms that allow links; elsewhere the platform's fallback is named.
func (c *Composer) callToAction(p postcraft.Platform, cta postcraft.CallToAction, url string) string {
	phrase, ok := c.ctas[cta]
	if !ok {
		phrase = c.ctas[postcraft.DefaultCallToAction]
	}
	url = strings.TrimSpace(url)
	switch {
	case url != "" && p.IncludeLink:
		return phrase + ": " + url
	case url != "" && p.LinkFallback != "":
		return phrase + " (" + p.LinkFallback + ")."
	default:
		return phrase + "."
	}
}

// fitHashtags joins up to limit tags with spaces, stopping before the line
// would exceed room.
func fitHashtags(tags []string, limit, room int) string {
	var b strings.Builder
	n := 0
	for _, tag := range tags {
		if n == limit {
			break
		}
		need := postcraft.RuneCount(tag)
		if n > 0 {
			need++
		}
		if postcraft.RuneCount(b.String())+need > room {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tag)
		n++
	}
	return b.String()
}

func fill(template, placeholder, value string) string {
	return strings.ReplaceAll(template, placeholder, value)
}

func endsWithTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

func join(sep string, sections ...string) string {
	parts := sections[:0:0]
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
