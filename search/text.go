package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minWordLength is the shortest query word that participates in word-based
// course scoring. Shorter fragments ("of", "a") carry no signal.
const minWordLength = 2

// normalizeQuery trims and lowercases a raw query string.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// qualifyingWords splits a normalized query on whitespace and drops words
// shorter than minWordLength.
func qualifyingWords(query string) []string {
	fields := strings.Fields(query)
	words := make([]string, 0, len(fields))
	for _, word := range fields {
		if utf8.RuneCountInString(word) >= minWordLength {
			words = append(words, word)
		}
	}
	return words
}

// containsAllWords checks whether every query word appears somewhere in the
// document text. Both sides must already be lowercased.
func containsAllWords(text string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(text, word) {
			return false
		}
	}
	return true
}

// splitNameWords splits a name on whitespace and commas, for per-word
// matching of "Smith, John" style values.
func splitNameWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}
