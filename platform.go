package postcraft

import "unicode/utf8"

// Platform describes where a post will be published and the limits its copy
// must respect.
type Platform struct {
	// Name is a stable identifier, e.g. "linkedin".
	Name string `yaml:"name" json:"name"`

	// Label is the display name, e.g. "LinkedIn".
	Label string `yaml:"label" json:"label"`

	// MaxChars is the maximum copy length in characters.
	MaxChars int `yaml:"maxChars" json:"maxChars"`

	// IncludeLink is true if a raw URL may be embedded in the copy.
	IncludeLink bool `yaml:"includeLink" json:"includeLink"`

	// LinkFallback replaces the URL on platforms without clickable links.
	LinkFallback string `yaml:"linkFallback,omitempty" json:"linkFallback,omitempty"`

	// MaxHashtags caps the hashtags appended to the copy.
	MaxHashtags int `yaml:"maxHashtags" json:"maxHashtags"`

	// Compact joins sections with single spaces instead of blank lines.
	Compact bool `yaml:"compact,omitempty" json:"compact,omitempty"`
}

// Validate returns an error if the platform contains invalid fields.
func (p *Platform) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "platform name required")
	}
	if !validPlatformName(p.Name) {
		return Errorf(EINVALID, "platform %q: name may only contain a-z, 0-9, '_' and '-'", p.Name)
	}
	if p.MaxChars <= 0 {
		return Errorf(EINVALID, "platform %q: max chars must be positive", p.Name)
	}
	if p.MaxHashtags < 0 {
		return Errorf(EINVALID, "platform %q: max hashtags must not be negative", p.Name)
	}
	return nil
}

// validPlatformName reports whether name matches [a-z0-9_-]+. Names become
// file names, so nothing else is allowed.
func validPlatformName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return name != ""
}

// Fits reports whether copy is within the platform's character budget.
func (p *Platform) Fits(copy string) bool {
	return utf8.RuneCountInString(copy) <= p.MaxChars
}

// DefaultPlatforms returns the built-in platforms in their fixed output order.
func DefaultPlatforms() []Platform {
	return []Platform{
		{Name: "x", Label: "X", MaxChars: 280, IncludeLink: true, MaxHashtags: 3, Compact: true},
		{Name: "linkedin", Label: "LinkedIn", MaxChars: 3000, IncludeLink: true, MaxHashtags: 5},
		{Name: "facebook", Label: "Facebook", MaxChars: 2200, IncludeLink: true, MaxHashtags: 3},
		{Name: "instagram", Label: "Instagram", MaxChars: 2200, IncludeLink: false, LinkFallback: "link in bio", MaxHashtags: 8},
	}
}
