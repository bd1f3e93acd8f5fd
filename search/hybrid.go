package search

import "strings"

// HybridSearch partitions data into exact matches — items whose value at any
// of exactKeys equals or starts with the query, case-insensitively — and a
// fuzzy remainder, returning the exact bucket followed by the fuzzy results.
// Exact matches keep insertion order; fuzzy results keep score order.
//
// With no exact match at all the partition is discarded and the whole
// collection goes through fuzzy search. An empty query returns data as-is.
//
// Because the fuzzy index cache is keyed by collection size, a cached index
// can hold different records than the remainder bucket passed here; fuzzy
// hits that would themselves qualify as exact matches are therefore dropped
// before concatenation.
func HybridSearch[T any](data []T, query string, cfg Config[T], exactKeys []Key[T]) []T {
	q := normalizeQuery(query)
	if q == "" {
		return data
	}

	isExact := func(item T) bool {
		for _, key := range exactKeys {
			value := strings.ToLower(key.Value(item))
			if value == q || strings.HasPrefix(value, q) {
				return true
			}
		}
		return false
	}

	exact := make([]T, 0, len(data))
	rest := make([]T, 0, len(data))
	for _, item := range data {
		if isExact(item) {
			exact = append(exact, item)
		} else {
			rest = append(rest, item)
		}
	}

	if len(exact) == 0 {
		return FuzzySearch(data, q, cfg)
	}

	results := exact
	for _, item := range FuzzySearch(rest, q, cfg) {
		if isExact(item) {
			continue
		}
		results = append(results, item)
	}
	return results
}
