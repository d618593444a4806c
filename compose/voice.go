package compose

import "github.com/fwojciec/postcraft"

// Voice is the phrasing profile for one tone. Templates use the
// placeholders {title}, {summary} and {audience}.
type Voice struct {
	// Hook opens the post and should contain {title}.
	Hook string `yaml:"hook"`

	// Mark ends the hook unless it already ends with '.', '!' or '?'.
	Mark string `yaml:"mark"`

	// Bridge introduces the summary and should contain {summary}.
	Bridge string `yaml:"bridge"`

	// Audience names who the post is for and should contain {audience}.
	Audience string `yaml:"audience"`
}

// DefaultVoices returns the built-in voice profile for every tone.
func DefaultVoices() map[postcraft.Tone]Voice {
	return map[postcraft.Tone]Voice{
		postcraft.ToneProfessional: {
			Hook:     "New on the blog: {title}",
			Mark:     ".",
			Bridge:   "Key takeaway: {summary}",
			Audience: "Relevant for {audience}.",
		},
		postcraft.ToneCasual: {
			Hook:     "Hey friends, we just posted: {title}",
			Mark:     ".",
			Bridge:   "The short version: {summary}",
			Audience: "Perfect for {audience}.",
		},
		postcraft.ToneEnthusiastic: {
			Hook:     "🚀 Big news: {title}",
			Mark:     "!",
			Bridge:   "Here's why we're excited: {summary}",
			Audience: "Calling all {audience}!",
		},
		postcraft.ToneAuthoritative: {
			Hook:     "Our analysis: {title}",
			Mark:     ".",
			Bridge:   "What you need to know: {summary}",
			Audience: "Essential reading for {audience}.",
		},
		postcraft.TonePlayful: {
			Hook:     "Guess what? {title}",
			Mark:     "!",
			Bridge:   "TL;DR: {summary}",
			Audience: "Psst, {audience}, this one's for you.",
		},
	}
}

// DefaultCallsToAction returns the built-in closing phrase for every call
// to action. Phrases carry no terminal punctuation; the composer adds it.
func DefaultCallsToAction() map[postcraft.CallToAction]string {
	return map[postcraft.CallToAction]string{
		postcraft.CTAReadNow:          "Read it now",
		postcraft.CTALearnMore:        "Learn more in the full post",
		postcraft.CTAJoinConversation: "Join the conversation and share your take",
		postcraft.CTASubscribe:        "Subscribe for more posts like this",
		postcraft.CTAContact:          "Talk to us about putting this into practice",
	}
}

// overlay returns v with every non-empty field of o applied on top.
func (v Voice) overlay(o Voice) Voice {
	if o.Hook != "" {
		v.Hook = o.Hook
	}
	if o.Mark != "" {
		v.Mark = o.Mark
	}
	if o.Bridge != "" {
		v.Bridge = o.Bridge
	}
	if o.Audience != "" {
		v.Audience = o.Audience
	}
	return v
}
