package postcraft

import "strings"

// Tone selects the voice profile used when composing posts.
type Tone string

// Tone constants.
const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneEnthusiastic  Tone = "enthusiastic"
	ToneAuthoritative Tone = "authoritative"
	TonePlayful       Tone = "playful"
)

// DefaultTone is used when no tone, or an unknown one, is supplied.
const DefaultTone = ToneProfessional

// Tones returns every supported tone in display order.
func Tones() []Tone {
	return []Tone{
		ToneProfessional,
		ToneCasual,
		ToneEnthusiastic,
		ToneAuthoritative,
		TonePlayful,
	}
}

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneEnthusiastic, ToneAuthoritative, TonePlayful:
		return true
	}
	return false
}

// Label returns a human-readable name for the tone.
func (t Tone) Label() string {
	switch t {
	case ToneProfessional:
		return "Professional"
	case ToneCasual:
		return "Casual"
	case ToneEnthusiastic:
		return "Enthusiastic"
	case ToneAuthoritative:
		return "Authoritative"
	case TonePlayful:
		return "Playful"
	}
	return string(t)
}

// ParseTone parses a tone name case-insensitively.
// Returns EINVALID if the name is not a supported tone.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", Errorf(EINVALID, "unknown tone %q", s)
	}
	return t, nil
}

// CallToAction selects the closing phrase appended to every post.
type CallToAction string

// CallToAction constants.
const (
	CTAReadNow          CallToAction = "readNow"
	CTALearnMore        CallToAction = "learnMore"
	CTAJoinConversation CallToAction = "joinConversation"
	CTASubscribe        CallToAction = "subscribe"
	CTAContact          CallToAction = "contact"
)

// DefaultCallToAction is used when no call to action, or an unknown one, is supplied.
const DefaultCallToAction = CTAReadNow

// CallsToAction returns every supported call to action in display order.
func CallsToAction() []CallToAction {
	return []CallToAction{
		CTAReadNow,
		CTALearnMore,
		CTAJoinConversation,
		CTASubscribe,
		CTAContact,
	}
}

// Valid reports whether c is one of the supported calls to action.
func (c CallToAction) Valid() bool {
	switch c {
	case CTAReadNow, CTALearnMore, CTAJoinConversation, CTASubscribe, CTAContact:
		return true
	}
	return false
}

// Label returns a human-readable name for the call to action.
func (c CallToAction) Label() string {
	switch c {
	case CTAReadNow:
		return "Read now"
	case CTALearnMore:
		return "Learn more"
	case CTAJoinConversation:
		return "Join the conversation"
	case CTASubscribe:
		return "Subscribe"
	case CTAContact:
		return "Talk to us"
	}
	return string(c)
}

// ParseCallToAction parses a call to action name case-insensitively.
// Both the camelCase form ("readNow") and kebab form ("read-now") are accepted.
func ParseCallToAction(s string) (CallToAction, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s)))
	for _, c := range CallsToAction() {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	return "", Errorf(EINVALID, "unknown call to action %q", s)
}
