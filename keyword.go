package postcraft

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxKeywords caps the keywords returned by ExtractKeywords.
const DefaultMaxKeywords = 10

// minKeywordLen is the shortest token considered a keyword.
const minKeywordLen = 3

// DefaultStopWords lists common English function words excluded from keywords.
var DefaultStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "could", "did", "do", "does",
	"doing", "down", "during", "each", "even", "ever", "every", "few", "for", "from",
	"further", "get", "gets", "got", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "however", "i", "if",
	"in", "into", "is", "it", "its", "itself", "just", "let", "like", "made",
	"make", "many", "may", "me", "might", "more", "most", "much", "must", "my",
	"myself", "never", "no", "nor", "not", "now", "of", "off", "on", "once",
	"one", "only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
	"same", "she", "should", "since", "so", "some", "still", "such", "than", "that",
	"the", "their", "theirs", "them", "themselves", "then", "there", "these", "they", "this",
	"those", "through", "to", "too", "under", "until", "up", "upon", "us", "use",
	"used", "using", "very", "via", "was", "way", "we", "well", "were", "what",
	"when", "where", "whether", "which", "while", "who", "whom", "why", "will", "with",
	"within", "without", "would", "yet", "you", "your", "yours", "yourself", "yourselves",
}

// KeywordOptions configures ExtractKeywords.
type KeywordOptions struct {
	// Max caps the number of keywords. Zero means DefaultMaxKeywords.
	Max int

	// StopWords replaces DefaultStopWords when non-nil.
	StopWords []string
}

// ExtractKeywords returns the most frequent non-stop-word terms in body,
// lowercased. Terms shorter than three characters and purely numeric terms
// are ignored. Ties are broken by first occurrence.
func ExtractKeywords(body string, opts KeywordOptions) []Keyword {
	limit := opts.Max
	if limit <= 0 {
		limit = DefaultMaxKeywords
	}
	stopList := opts.StopWords
	if stopList == nil {
		stopList = DefaultStopWords
	}
	stop := make(map[string]struct{}, len(stopList))
	for _, w := range stopList {
		stop[strings.ToLower(w)] = struct{}{}
	}

	index := make(map[string]int)
	var keywords []Keyword
	for _, token := range tokenize(body) {
		term := strings.ToLower(token)
		if utf8.RuneCountInString(term) < minKeywordLen || isNumeric(term) {
			continue
		}
		if _, ok := stop[term]; ok {
			continue
		}
		if i, ok := index[term]; ok {
			keywords[i].Score++
			continue
		}
		index[term] = len(keywords)
		keywords = append(keywords, Keyword{Term: term, Score: 1})
	}

	// Stable sort keeps first-occurrence order among equal scores.
	slices.SortStableFunc(keywords, func(a, b Keyword) int {
		return b.Score - a.Score
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}

// KeywordTerms returns the terms of keywords in order.
func KeywordTerms(keywords []Keyword) []string {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		terms = append(terms, k.Term)
	}
	return terms
}

// tokenize splits s into runs of letters and digits.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
