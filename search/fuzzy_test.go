package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	name string
	code string
}

func docConfig() Config[doc] {
	return NewConfig(
		NewKey("name", 2, func(d doc) string { return d.name }),
		NewKey("code", 1, func(d doc) string { return d.code }),
	)
}

func TestIndexSearch_EmptyQuery(t *testing.T) {
	docs := []doc{
		{name: "Chemistry", code: "CH34"},
		{name: "Biology", code: "BI34"},
	}
	index := Build(docs, docConfig())

	matches := index.Search("   ")
	require.Len(t, matches, 2)
	for _, match := range matches {
		assert.Zero(t, match.Score)
	}
}

func TestIndexSearch_ShortQuery(t *testing.T) {
	docs := []doc{{name: "Chemistry", code: "CH34"}}
	cfg := docConfig()
	cfg.MinMatchCharLength = 2
	index := Build(docs, cfg)

	// Shorter than the minimum is "too little signal", not "no filter".
	assert.Empty(t, index.Search("c"))
	assert.NotEmpty(t, index.Search("ch"))
}

func TestIndexSearch_ExactMatchScoresZero(t *testing.T) {
	docs := []doc{
		{name: "Chemistry", code: "CH34"},
		{name: "Chemical Engineering", code: "CE01"},
	}
	index := Build(docs, docConfig())

	matches := index.Search("chemistry")
	require.NotEmpty(t, matches)
	assert.Equal(t, "Chemistry", matches[0].Item.name)
	assert.Zero(t, matches[0].Score)
}

func TestIndexSearch_TierOrdering(t *testing.T) {
	docs := []doc{
		{name: "Advanced Mathematics", code: "AM34"}, // substring
		{name: "Mathematics", code: "MA34"},          // exact
		{name: "Mathematics Extension", code: "ME34"}, // prefix
	}
	index := Build(docs, docConfig())

	matches := index.Search("mathematics")
	require.Len(t, matches, 3)
	assert.Equal(t, "Mathematics", matches[0].Item.name)
	assert.Equal(t, "Mathematics Extension", matches[1].Item.name)
	assert.Equal(t, "Advanced Mathematics", matches[2].Item.name)
	assert.True(t, matches[0].Score < matches[1].Score)
	assert.True(t, matches[1].Score < matches[2].Score)
}

func TestIndexSearch_TypoTolerance(t *testing.T) {
	docs := []doc{
		{name: "Mathematical Methods", code: "MM34"},
		{name: "Physical Education", code: "PE34"},
	}
	cfg := docConfig()
	cfg.MinMatchCharLength = 2
	index := Build(docs, cfg)

	matches := index.Search("mathz")
	require.NotEmpty(t, matches)
	assert.Equal(t, "Mathematical Methods", matches[0].Item.name)
}

func TestIndexSearch_ThresholdFiltersNoise(t *testing.T) {
	docs := []doc{
		{name: "Chemistry", code: "CH34"},
		{name: "Biology", code: "BI34"},
	}
	index := Build(docs, docConfig())

	assert.Empty(t, index.Search("zzqqxxw"))
}

func TestIndexSearch_KeyWeightBreaksTies(t *testing.T) {
	// Both match as a substring, but the name key carries weight 2 so the
	// name hit halves its score and sorts first.
	docs := []doc{
		{name: "unrelated", code: "xx-target-xx"},
		{name: "xx target xx", code: "unrelated"},
	}
	cfg := docConfig()
	cfg.Threshold = 0.4
	index := Build(docs, cfg)

	matches := index.Search("target")
	require.Len(t, matches, 2)
	assert.Equal(t, "xx target xx", matches[0].Item.name)
	assert.Equal(t, "xx-target-xx", matches[1].Item.code)
}

func TestIndexSearch_EmptyKeyValueNeverMatches(t *testing.T) {
	docs := []doc{{name: "", code: ""}}
	index := Build(docs, docConfig())

	assert.Empty(t, index.Search("anything"))
}

func TestFuzzySearch_EmptyQueryReturnsDataUnchanged(t *testing.T) {
	defer purgeIndexCache()

	docs := []doc{
		{name: "Chemistry", code: "CH34"},
		{name: "Biology", code: "BI34"},
	}

	results := FuzzySearch(docs, "", docConfig())
	assert.Equal(t, docs, results)
}

func TestFuzzySearch_ReturnsItemsBestFirst(t *testing.T) {
	defer purgeIndexCache()

	docs := []doc{
		{name: "Chemical Engineering", code: "CE01"},
		{name: "Chemistry", code: "CH34"},
	}

	results := FuzzySearch(docs, "chemistry", docConfig())
	require.NotEmpty(t, results)
	assert.Equal(t, "Chemistry", results[0].name)
}

func TestConfig_NormalizedCoercesMalformedValues(t *testing.T) {
	cfg := Config[doc]{Threshold: -1, MinMatchCharLength: 0, Distance: -5}
	norm := cfg.normalized()

	assert.Zero(t, norm.Threshold)
	assert.Equal(t, 1, norm.MinMatchCharLength)
	assert.Equal(t, 100, norm.Distance)

	cfg = Config[doc]{Threshold: 2}
	assert.Equal(t, 1.0, cfg.normalized().Threshold)
}

func TestNewKey_WeightFloor(t *testing.T) {
	key := NewKey("name", 0.5, func(d doc) string { return d.name })
	assert.Equal(t, 1.0, key.Weight)
}
