package search

import (
	"math"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xrash/smetrics"
)

// Match score tiers. Lower is better; 0 is an exact key match. The bases
// keep the signal classes ordered: exact < prefix < substring < token
// similarity < subsequence, with the similarity distance and location
// penalty layered on top.
const (
	prefixScore     = 0.05
	substringScore  = 0.1
	tokenScoreBase  = 0.12
	subseqScoreBase = 0.25
	subseqSpread    = 0.5
	locationWeight  = 0.15
	noMatchScore    = 1.0

	// Jaro-Winkler boost parameters (standard values).
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// Match is a single scored result. Score 0 is an exact match on some key.
type Match[T any] struct {
	Item  T
	Score float64
}

// Index is an approximate string-matching index over a fixed collection and
// weighted key set. Build once, search many times; indexes are cached by
// collection size and configuration (see cache.go).
type Index[T any] struct {
	items []T
	cfg   Config[T]
}

// Build constructs an index over items with the given configuration.
func Build[T any](items []T, cfg Config[T]) *Index[T] {
	return &Index[T]{items: items, cfg: cfg.normalized()}
}

// Search matches the query against every indexed item and returns the items
// scoring at or under the configured threshold, ascending by score.
//
// An empty or whitespace-only query is "no filter": the entire collection
// comes back with score 0. A query shorter than MinMatchCharLength returns
// nothing; the two cases are deliberately distinct.
func (ix *Index[T]) Search(query string) []Match[T] {
	q := normalizeQuery(query)
	if q == "" {
		all := make([]Match[T], len(ix.items))
		for i, item := range ix.items {
			all[i] = Match[T]{Item: item}
		}
		return all
	}
	if len([]rune(q)) < ix.cfg.MinMatchCharLength {
		return nil
	}

	words := strings.Fields(q)
	matches := make([]Match[T], 0, len(ix.items))
	for _, item := range ix.items {
		score := ix.itemScore(item, q, words)
		if score <= ix.cfg.Threshold {
			matches = append(matches, Match[T]{Item: item, Score: score})
		}
	}

	if ix.cfg.ShouldSort {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Score < matches[j].Score
		})
	}
	return matches
}

// itemScore is the best (lowest) weighted key score for the item.
func (ix *Index[T]) itemScore(item T, query string, words []string) float64 {
	best := math.Inf(1)
	for _, key := range ix.cfg.Keys {
		weight := key.Weight
		if weight < 1 {
			weight = 1
		}
		score := ix.keyScore(key.Value(item), query, words) / weight
		if score < best {
			best = score
		}
	}
	return best
}

// keyScore scores one key value against the query: exact, prefix and
// substring tiers first, then the per-word average of the fuzzy signals.
func (ix *Index[T]) keyScore(value, query string, words []string) float64 {
	text := strings.ToLower(value)
	if text == "" {
		return noMatchScore
	}
	if text == query {
		return 0
	}
	if strings.HasPrefix(text, query) {
		return prefixScore
	}
	if idx := strings.Index(text, query); idx >= 0 {
		return substringScore + ix.locationPenalty(idx)
	}

	var total float64
	for _, word := range words {
		total += ix.wordScore(text, word)
	}
	return total / float64(len(words))
}

// wordScore scores a single query word against the key text using the best
// of three signals: direct containment, subsequence match (sahilm/fuzzy)
// penalized by how widely the matched runes spread, and per-token
// Jaro-Winkler similarity.
func (ix *Index[T]) wordScore(text, word string) float64 {
	if idx := strings.Index(text, word); idx >= 0 {
		return substringScore + ix.locationPenalty(idx)
	}

	best := noMatchScore

	if results := fuzzy.Find(word, []string{text}); len(results) > 0 {
		indexes := results[0].MatchedIndexes
		first := indexes[0]
		spread := indexes[len(indexes)-1] - first + 1
		score := subseqScoreBase +
			subseqSpread*(1-float64(len(word))/float64(spread)) +
			ix.locationPenalty(first)
		if score < best {
			best = score
		}
	}

	for _, token := range strings.Fields(text) {
		distance := 1 - smetrics.JaroWinkler(word, token, jwBoostThreshold, jwPrefixSize)
		if score := tokenScoreBase + distance; score < best {
			best = score
		}
	}

	return best
}

// locationPenalty degrades matches that start far into the text. Zero while
// IgnoreLocation is set, which is the default.
func (ix *Index[T]) locationPenalty(offset int) float64 {
	if ix.cfg.IgnoreLocation {
		return 0
	}
	ratio := float64(offset) / float64(ix.cfg.Distance)
	if ratio > 1 {
		ratio = 1
	}
	return locationWeight * ratio
}

// FuzzySearch runs a cached-index search and returns the matching items,
// best first. Empty query returns data unchanged; a query shorter than
// MinMatchCharLength returns nothing.
func FuzzySearch[T any](data []T, query string, cfg Config[T]) []T {
	q := normalizeQuery(query)
	if q == "" {
		return data
	}
	matches := BuildCached(data, cfg).Search(q)
	items := make([]T, len(matches))
	for i, match := range matches {
		items[i] = match.Item
	}
	return items
}
