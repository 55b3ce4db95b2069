package extract

import (
	"regexp"
	"strings"
)

// entityPattern matches runs of capitalized words separated by single
// spaces (a word is one uppercase letter followed by lowercase letters).
// A crude proper-noun proxy that needs no model.
var entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`)

// Matcher finds capitalized-word-sequence entity candidates in raw text.
type Matcher struct{}

// NewMatcher creates an entity pattern matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Find returns every non-overlapping entity candidate in order of first
// appearance. Duplicates are preserved; deduplication happens downstream.
// A word that repeats its predecessor starts a new candidate, so runs like
// "Paris Paris" yield two candidates instead of one merged span.
func (m *Matcher) Find(text string) []string {
	var out []string
	for _, run := range entityPattern.FindAllString(text, -1) {
		out = append(out, splitRepeats(run)...)
	}
	return out
}

// splitRepeats breaks a capitalized run before any word equal to the one
// preceding it.
func splitRepeats(run string) []string {
	words := strings.Split(run, " ")

	var out []string
	start := 0
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			out = append(out, strings.Join(words[start:i], " "))
			start = i
		}
	}
	return append(out, strings.Join(words[start:], " "))
}
