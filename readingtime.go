package postcraft

import (
	"fmt"
	"strings"
)

// DefaultWordsPerMinute is the assumed reading speed.
const DefaultWordsPerMinute = 200

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ReadingMinutes returns the whole minutes needed to read body at wpm words
// per minute, rounded up and never less than one.
func ReadingMinutes(body string, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	minutes := (CountWords(body) + wpm - 1) / wpm
	return max(minutes, 1)
}

// EstimateReadingTime formats ReadingMinutes as "N min read".
func EstimateReadingTime(body string, wpm int) string {
	return fmt.Sprintf("%d min read", ReadingMinutes(body, wpm))
}
