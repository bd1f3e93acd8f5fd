package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/atarsearch/atarsearch/core"
)

// categoryBand is the half-width of the target band around the ATAR.
const categoryBand = 5.0

// Word-based scoring tiers, first match wins per word. A word that survived
// the containment filter but sits in no favorable position still counts 1.
const (
	tierInstitutionExact   = 100
	tierNameExact          = 90
	tierInstitutionPrefix  = 50
	tierNamePrefix         = 40
	tierInstitutionHasWord = 20
	tierNameHasWord        = 15
	tierContained          = 1
)

// CourseSearchOptions configures SearchCourses. Zero values degrade rather
// than error: no term means no filtering, ATAR 0 pushes every published rank
// toward reach, a non-positive limit means no limiting.
type CourseSearchOptions struct {
	SearchTerm string
	Category   core.Category
	ATAR       float64
	Limit      int
}

// EnrichCourses classifies each course against the ATAR and attaches the
// composite search text. Enriched values are derived fresh per call; the
// input records are never mutated.
func EnrichCourses(courses []*core.Course, atar float64) []*core.EnrichedCourse {
	enriched := make([]*core.EnrichedCourse, len(courses))
	for i, course := range courses {
		category, rankNum := classifyRank(course.Rank, atar)
		enriched[i] = &core.EnrichedCourse{
			Course:     *course,
			Category:   category,
			RankNum:    rankNum,
			SearchText: course.Institution + " " + course.Name + " " + course.Code,
		}
	}
	return enriched
}

// classifyRank maps a rank string to a category and numeric rank. Sentinel
// and unparsable ranks become unknown/0. The band boundaries are inclusive:
// a rank exactly atar±5 is target.
func classifyRank(rank string, atar float64) (core.Category, float64) {
	trimmed := strings.TrimSpace(rank)
	if core.UnpublishedRanks[trimmed] {
		return core.CategoryUnknown, 0
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return core.CategoryUnknown, 0
	}
	switch {
	case num < atar-categoryBand:
		return core.CategorySafe, num
	case num > atar+categoryBand:
		return core.CategoryReach, num
	default:
		return core.CategoryTarget, num
	}
}

// SearchCourses enriches courses and ranks them for the query.
//
// With a search term it first tries word-based search: the term's qualifying
// words must ALL appear in a course's search text, and survivors are scored
// by per-word tiers. That result is kept only when it is non-empty and
// either the query had at least two qualifying words or at least three
// courses survived; otherwise the whole enriched set goes through fuzzy
// search. The category filter applies after either strategy, and without a
// term results sort by rank with unknown courses last.
func SearchCourses(courses []*core.Course, opts CourseSearchOptions) []*core.EnrichedCourse {
	results := EnrichCourses(courses, opts.ATAR)

	term := normalizeQuery(opts.SearchTerm)
	if term != "" {
		if words := qualifyingWords(term); len(words) > 0 {
			scored := wordSearchCourses(results, words)
			if len(scored) > 0 && (len(words) >= 2 || len(scored) >= 3) {
				results = scored
			} else {
				results = FuzzySearch(results, term, courseFuzzyConfig())
			}
		}
	}

	if opts.Category != "" && opts.Category != core.CategoryAll {
		filtered := make([]*core.EnrichedCourse, 0, len(results))
		for _, course := range results {
			if course.Category == opts.Category {
				filtered = append(filtered, course)
			}
		}
		results = filtered
	}

	if term == "" {
		sortCoursesByRank(results)
	}

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// wordSearchCourses keeps courses containing every query word and orders
// them by summed tier scores, descending. Ties keep input order.
func wordSearchCourses(courses []*core.EnrichedCourse, words []string) []*core.EnrichedCourse {
	type scoredCourse struct {
		course *core.EnrichedCourse
		score  int
	}

	scored := make([]scoredCourse, 0, len(courses))
	for _, course := range courses {
		text := strings.ToLower(course.SearchText)
		if !containsAllWords(text, words) {
			continue
		}
		total := 0
		for _, word := range words {
			total += courseWordTier(course, word)
		}
		scored = append(scored, scoredCourse{course: course, score: total})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	results := make([]*core.EnrichedCourse, len(scored))
	for i, s := range scored {
		results[i] = s.course
	}
	return results
}

// courseWordTier returns the first matching tier for the word, highest
// first. Tiers never accumulate for the same word.
func courseWordTier(course *core.EnrichedCourse, word string) int {
	institution := strings.ToLower(course.Institution)
	name := strings.ToLower(course.Name)

	switch {
	case institution == word:
		return tierInstitutionExact
	case name == word:
		return tierNameExact
	case strings.HasPrefix(institution, word):
		return tierInstitutionPrefix
	case strings.HasPrefix(name, word):
		return tierNamePrefix
	case strings.Contains(institution, " "+word):
		return tierInstitutionHasWord
	case strings.Contains(name, " "+word):
		return tierNameHasWord
	default:
		return tierContained
	}
}

// sortCoursesByRank orders courses by numeric rank descending with
// unknown-category courses after all others, preserving input order within
// ties and within the unknown block.
func sortCoursesByRank(courses []*core.EnrichedCourse) {
	sort.SliceStable(courses, func(i, j int) bool {
		unknownI := courses[i].Category == core.CategoryUnknown
		unknownJ := courses[j].Category == core.CategoryUnknown
		if unknownI != unknownJ {
			return !unknownI
		}
		if unknownI {
			return false
		}
		return courses[i].RankNum > courses[j].RankNum
	})
}

// courseFuzzyConfig is the fallback configuration when word-based search
// produces too little signal.
func courseFuzzyConfig() Config[*core.EnrichedCourse] {
	cfg := NewConfig(
		NewKey("searchText", 2, func(c *core.EnrichedCourse) string { return c.SearchText }),
		NewKey("name", 1.5, func(c *core.EnrichedCourse) string { return c.Name }),
		NewKey("institution", 1.5, func(c *core.EnrichedCourse) string { return c.Institution }),
		NewKey("code", 1, func(c *core.EnrichedCourse) string { return c.Code }),
	)
	cfg.Threshold = 0.4
	cfg.MinMatchCharLength = 2
	return cfg
}
