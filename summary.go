package postcraft

import "strings"

// Summary defaults.
const (
	DefaultSummarySentences = 2
	DefaultSummaryChars     = 280
)

// SummaryOptions configures Summarize.
type SummaryOptions struct {
	// MaxSentences caps the number of leading sentences. Zero means DefaultSummarySentences.
	MaxSentences int

	// MaxChars caps the summary length. Zero means DefaultSummaryChars.
	MaxChars int
}

// Summarize returns the leading sentences of body that fit both the
// sentence and character budgets. If the first sentence alone is too long it
// is cut at a word boundary and ends with an ellipsis.
func Summarize(body string, opts SummaryOptions) string {
	maxSentences := opts.MaxSentences
	if maxSentences <= 0 {
		maxSentences = DefaultSummarySentences
	}
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultSummaryChars
	}

	var b strings.Builder
	length, count := 0, 0
	for s := range Sentences(body) {
		n := RuneCount(s)
		if count == 0 {
			if n > maxChars {
				return TruncateWords(s, maxChars)
			}
		} else {
			if length+1+n > maxChars {
				break
			}
			b.WriteByte(' ')
			length++
		}
		b.WriteString(s)
		length += n
		count++
		if count >= maxSentences {
			break
		}
	}
	return b.String()
}
